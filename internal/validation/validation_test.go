package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng-Enough-Pass!"))

	assert.Error(t, ValidatePassword("Sh0rt-pass!"), "below 12 characters")
	assert.Error(t, ValidatePassword(strings.Repeat("Aa1!", 40)), "above 128 characters")
	assert.Error(t, ValidatePassword("alllowercase1!aa"), "missing uppercase")
	assert.Error(t, ValidatePassword("ALLUPPERCASE1!AA"), "missing lowercase")
	assert.Error(t, ValidatePassword("NoDigitsHere!!aa"), "missing digit")
	assert.Error(t, ValidatePassword("NoSpecials123aaa"), "missing special character")
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("ada"))
	assert.NoError(t, ValidateUsername("ada_lovelace-1"))

	assert.Error(t, ValidateUsername("ab"), "too short")
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)), "too long")
	assert.Error(t, ValidateUsername("ada lovelace"), "spaces not allowed")
	assert.Error(t, ValidateUsername("_ada"), "leading underscore")
	assert.Error(t, ValidateUsername("ada-"), "trailing hyphen")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ada@example.com"))
	assert.NoError(t, ValidateEmail("ada+tag@sub.example.co"))

	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("ada@"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidateStruct(t *testing.T) {
	type body struct {
		Name *string `validate:"omitempty,max=5"`
		URL  *string `validate:"omitempty,url"`
	}

	assert.NoError(t, ValidateStruct(body{}), "nil optional fields pass")

	ok := "short"
	url := "https://example.com"
	assert.NoError(t, ValidateStruct(body{Name: &ok, URL: &url}))

	long := "much too long"
	err := ValidateStruct(body{Name: &long})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed 5 characters")

	bad := "not a url"
	err = ValidateStruct(body{URL: &bad})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be a valid URL")
}
