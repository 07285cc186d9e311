package respond

import (
	"regexp"
)

var (
	// ユーザー情報付きURL（user:pass@host）
	userinfoPattern = regexp.MustCompile(`://([^:/@\s]+):([^@/\s]+)@`)

	// クエリ文字列内の認証情報
	secretParamPattern = regexp.MustCompile(`(?i)([?&](?:api[_-]?key|apikey|token|access_token|key|secret|signature|sig)=)[^&\s"':,;)]+`)

	// Authorization: Bearer xxx
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9._~+/=-]+`)
)

// SanitizeError returns the error message with credentials masked. Feed URLs
// frequently carry API keys or basic-auth userinfo.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	return SanitizeMessage(err.Error())
}

// SanitizeMessage masks credentials in msg.
func SanitizeMessage(msg string) string {
	msg = userinfoPattern.ReplaceAllString(msg, "://$1:****@")
	msg = secretParamPattern.ReplaceAllString(msg, "${1}****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
