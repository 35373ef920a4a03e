// Package oauthtest checks OAuth1 HMAC-SHA1 signatures on requests, so that
// fake providers in tests can reject badly signed calls like USOS does.
package oauthtest

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

var ErrBadSignature = errors.New("oauthtest: signature does not match")

// Params parses an OAuth Authorization header into its parameters.
func Params(header string) map[string]string {
	params := map[string]string{}
	header = strings.TrimPrefix(header, "OAuth ")

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		value, _ := url.PathUnescape(strings.Trim(kv[1], `"`))
		params[kv[0]] = value
	}

	return params
}

// Verify recomputes the signature of r from its method, URL, Authorization
// parameters, query and form body, and compares it with the one sent. It works
// on both server and client side requests, and parses the form of r.
func Verify(r *http.Request, consumerSecret, tokenSecret string) error {
	params := Params(r.Header.Get("Authorization"))
	if method := params["oauth_signature_method"]; method != "HMAC-SHA1" {
		return fmt.Errorf("oauthtest: unexpected signature method %q", method)
	}

	if err := r.ParseForm(); err != nil {
		return err
	}

	var pairs [][2]string
	for k, v := range params {
		if k == "oauth_signature" || k == "realm" {
			continue
		}
		pairs = append(pairs, [2]string{encode(k), encode(v)})
	}
	for _, values := range []url.Values{r.URL.Query(), r.PostForm} {
		for k, vs := range values {
			for _, v := range vs {
				pairs = append(pairs, [2]string{encode(k), encode(v)})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	normalized := make([]string, len(pairs))
	for i, p := range pairs {
		normalized[i] = p[0] + "=" + p[1]
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	baseURL := scheme + "://" + strings.ToLower(host) + r.URL.EscapedPath()

	base := r.Method + "&" + encode(baseURL) + "&" + encode(strings.Join(normalized, "&"))

	mac := hmac.New(sha1.New, []byte(encode(consumerSecret)+"&"+encode(tokenSecret)))
	mac.Write([]byte(base))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(params["oauth_signature"])) {
		return ErrBadSignature
	}

	return nil
}

// encode percent-encodes s as RFC 3986 requires for signature base strings.
func encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' ||
			c == '-' || c == '.' || c == '_' || c == '~' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
