package service

import (
	"html/template"
	"strings"
)

// confirmationTmpl is the body of the verification email. The token doubles
// as the manual code for the /verification_code flow.
var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html>
<body>
<p>Welcome! Please confirm your email address by clicking the link below.</p>
<p><a href="{{.ConfirmURL}}">Confirm your email</a></p>
<p>Or enter this verification code manually: <code>{{.Code}}</code></p>
<p>The link expires in 24 hours.</p>
</body>
</html>`))

func confirmationEmailBody(baseURL, token string) (string, error) {
	data := struct {
		ConfirmURL string
		Code       string
	}{
		ConfirmURL: strings.TrimRight(baseURL, "/") + "/confirmation/" + token,
		Code:       token,
	}
	var sb strings.Builder
	if err := confirmationTmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
