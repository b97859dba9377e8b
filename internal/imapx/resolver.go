package imapx

import (
	"fmt"
	"strings"
)

// Common IMAP servers for popular email providers
var knownIMAPServers = map[string]string{
	"gmail.com":      "imap.gmail.com:993",
	"googlemail.com": "imap.gmail.com:993",
	"outlook.com":    "outlook.office365.com:993",
	"hotmail.com":    "outlook.office365.com:993",
	"live.com":       "outlook.office365.com:993",
	"msn.com":        "outlook.office365.com:993",
	"yahoo.com":      "imap.mail.yahoo.com:993",
	"yahoo.co.uk":    "imap.mail.yahoo.com:993",
	"yandex.ru":      "imap.yandex.ru:993",
	"yandex.com":     "imap.yandex.com:993",
	"mail.ru":        "imap.mail.ru:993",
	"icloud.com":     "imap.mail.me.com:993",
	"me.com":         "imap.mail.me.com:993",
	"mac.com":        "imap.mail.me.com:993",
	"aol.com":        "imap.aol.com:993",
	"zoho.com":       "imap.zoho.com:993",
	"fastmail.com":   "imap.fastmail.com:993",
	"gmx.com":        "imap.gmx.com:993",
	"gmx.de":         "imap.gmx.net:993",
	"web.de":         "imap.web.de:993",
	"t-online.de":    "secureimap.t-online.de:993",
}

// ResolveAddr guesses the IMAP server address for an account whose username
// is a mail address and that has no server configured.
func ResolveAddr(username string) (string, error) {
	parts := strings.Split(username, "@")
	if len(parts) != 2 {
		return "", fmt.Errorf("cannot derive IMAP server from %q: not a mail address", username)
	}

	domain := strings.ToLower(parts[1])
	if server, ok := knownIMAPServers[domain]; ok {
		return server, nil
	}

	// Default fallback; a wrong guess surfaces as a login failure.
	return "imap." + domain + ":993", nil
}
