package oauthtest

import (
	"net/http"
	"testing"

	"hawx.me/code/assert"
)

// Example from RFC 5849 section 3.4.1.
func TestVerify(t *testing.T) {
	assert := assert.Wrap(t)

	req, _ := http.NewRequest("GET", "http://photos.example.net/photos?file=vacation.jpg&size=original", nil)
	req.Header.Set("Authorization", `OAuth realm="Photos", oauth_consumer_key="dpf43f3p2l4k3l03", oauth_token="nnch734d00sl2jdk", oauth_signature_method="HMAC-SHA1", oauth_timestamp="1191242096", oauth_nonce="kllo9940pd9333jh", oauth_version="1.0", oauth_signature="tR3%2BTy81lMeYAr%2FFid0kMTYa%2FWM%3D"`)

	assert(Verify(req, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00")).Nil()
	assert(Verify(req, "kd94hf93k423kf44", "wrong")).Equal(ErrBadSignature)

	req.URL.RawQuery = "file=vacation.jpg&size=small"
	assert(Verify(req, "kd94hf93k423kf44", "pfkkdhi9sl3r4s00")).Equal(ErrBadSignature)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "a%20b%2Bc%2F%C5%82~-._", encode("a b+c/ł~-._"))
}

func TestParams(t *testing.T) {
	params := Params(`OAuth oauth_token="a%2Fb", oauth_consumer_key="key"`)
	assert.Equal(t, map[string]string{"oauth_token": "a/b", "oauth_consumer_key": "key"}, params)
}
