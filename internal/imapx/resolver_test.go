package imapx

import "testing"

func TestResolveAddr(t *testing.T) {
	tests := []struct {
		in  string
		out string
		ok  bool
	}{
		{"alice@gmail.com", "imap.gmail.com:993", true},
		{"alice@GMAIL.COM", "imap.gmail.com:993", true},
		{"bob@hotmail.com", "outlook.office365.com:993", true},
		{"carol@selfhosted.example", "imap.selfhosted.example:993", true},
		{"not-a-mail-address", "", false},
		{"two@ats@example.org", "", false},
	}
	for _, test := range tests {
		out, err := ResolveAddr(test.in)
		if !test.ok {
			if err == nil {
				t.Errorf("ResolveAddr(%q) expected error; got %q", test.in, out)
			}
			continue
		}
		if err != nil {
			t.Errorf("ResolveAddr(%q): %v", test.in, err)
			continue
		}
		if out != test.out {
			t.Errorf("ResolveAddr(%q) = %q; want %q", test.in, out, test.out)
		}
	}
}
