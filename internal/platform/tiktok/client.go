package tiktok

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"media-repurposer-go/internal/config"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// newHTTPClient builds a resty client with the shared timeout/retry
// policy. Retries cover transport errors, 429 and 5xx only; a request
// that fails after retries surfaces as the operation's failure.
func newHTTPClient() *resty.Client {
	timeoutSec := config.AppConfig.HttpTimeoutSec
	if timeoutSec <= 0 {
		timeoutSec = 15
	}
	rc := resty.New()
	rc.SetTimeout(time.Duration(timeoutSec) * time.Second)
	rc.SetHeader("user-agent", defaultUserAgent)

	// Resolution is retry-free by default; transport-level retries are
	// an explicit opt-in and still cover only 429/5xx and dial errors.
	retryCount := config.AppConfig.HttpRetryCount
	if retryCount > 0 {
		baseMs := config.AppConfig.HttpRetryBaseDelayMs
		if baseMs <= 0 {
			baseMs = 500
		}
		maxMs := config.AppConfig.HttpRetryMaxDelayMs
		if maxMs <= 0 {
			maxMs = 4000
		}
		rc.SetRetryCount(retryCount)
		rc.SetRetryWaitTime(time.Duration(baseMs) * time.Millisecond)
		rc.SetRetryMaxWaitTime(time.Duration(maxMs) * time.Millisecond)
		rc.AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			if r == nil {
				return false
			}
			code := r.StatusCode()
			return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
		})
	}
	return rc
}
