package utils

import (
	"receh48/src/config"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
	assert.Equal(t, "Rp 80.000", FormatRupiah(80000))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
	assert.Equal(t, "-Rp 15.000", FormatRupiah(-15000))
}

func TestWithSuffix(t *testing.T) {
	prev := config.API_ENV
	defer func() { config.API_ENV = prev }()

	config.API_ENV = "test"
	assert.Equal(t, "emails-test", WithSuffix("emails"))
	assert.Equal(t, "", WithSuffix(""))

	config.API_ENV = "production"
	assert.Equal(t, "emails", WithSuffix("emails"))
}

func TestNullIfBlank(t *testing.T) {
	assert.Nil(t, NullIfBlank("   "))
	v := NullIfBlank("  @budi ")
	require.NotNil(t, v)
	assert.Equal(t, "@budi", *v)
}

func TestSealAndOpenSecret(t *testing.T) {
	prev := config.API_SECRET
	defer func() { config.API_SECRET = prev }()

	config.API_SECRET = ""
	plain, isSealed, err := SealSecret("rahasia")
	require.NoError(t, err)
	assert.False(t, isSealed)
	assert.Equal(t, "rahasia", plain)

	config.API_SECRET = strings.Repeat("0f", 32)
	sealed, isSealed, err := SealSecret("rahasia")
	require.NoError(t, err)
	assert.True(t, isSealed)
	assert.NotContains(t, sealed, "rahasia")

	opened, err := OpenSecret(sealed, true)
	require.NoError(t, err)
	assert.Equal(t, "rahasia", opened)

	passthrough, err := OpenSecret("legacy-plain", false)
	require.NoError(t, err)
	assert.Equal(t, "legacy-plain", passthrough)

	config.API_SECRET = ""
	_, err = OpenSecret(sealed, true)
	assert.Error(t, err)
}

func TestSealSecretEncryptsPrefixedValues(t *testing.T) {
	prev := config.API_SECRET
	defer func() { config.API_SECRET = prev }()
	config.API_SECRET = strings.Repeat("0f", 32)

	for _, value := range []string{"enc:hunter2", "enc:", "00ff"} {
		sealed, isSealed, err := SealSecret(value)
		require.NoError(t, err)
		assert.True(t, isSealed, value)
		assert.NotEqual(t, value, sealed)

		opened, err := OpenSecret(sealed, isSealed)
		require.NoError(t, err)
		assert.Equal(t, value, opened)
	}
}

func TestDecryptMessageWithWrongKey(t *testing.T) {
	enc, err := EncryptMessage([]byte(strings.Repeat("k", 32)), "hello")
	require.NoError(t, err)
	_, err = DecryptMessage([]byte(strings.Repeat("x", 32)), enc)
	assert.Error(t, err)
	_, err = DecryptMessage([]byte(strings.Repeat("k", 32)), "00")
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	type body struct {
		Service string `validate:"servicetype"`
		Name    string `validate:"trimmin=3,trimmax=5"`
	}
	assert.NoError(t, v.Struct(body{Service: "video_call", Name: " Budi "}))
	assert.NoError(t, v.Struct(body{Service: "2s", Name: "Rina"}))
	assert.Error(t, v.Struct(body{Service: "concert", Name: "Budi"}))
	assert.Error(t, v.Struct(body{Service: "vc", Name: "  ab  "}))
	assert.Error(t, v.Struct(body{Service: "vc", Name: "Budiman"}))
}
