package mailparse

import (
	"strings"
	"testing"

	"github.com/emersion/go-message"
)

func parseRaw(t *testing.T, lines ...string) *message.Entity {
	t.Helper()
	ent, err := message.Read(strings.NewReader(strings.Join(lines, "\r\n")))
	if err != nil && !message.IsUnknownCharset(err) {
		t.Fatalf("read message: %v", err)
	}
	return ent
}

func TestCountAttachmentsPlainBodyOnly(t *testing.T) {
	ent := parseRaw(t,
		"Content-Type: text/plain",
		"",
		"just a body",
	)
	if got := CountAttachments(ent); got != 0 {
		t.Errorf("got %d attachments; want 0", got)
	}
}

func TestCountAttachmentsPlainBodyWithTwoLeaves(t *testing.T) {
	ent := parseRaw(t,
		`Content-Type: multipart/mixed; boundary="b"`,
		"",
		"--b",
		"Content-Type: text/plain",
		"",
		"the body",
		"--b",
		"Content-Type: application/pdf",
		`Content-Disposition: attachment; filename="a.pdf"`,
		"",
		"PDFDATA",
		"--b",
		"Content-Type: application/octet-stream",
		"",
		"BLOB",
		"--b--",
	)
	if got := CountAttachments(ent); got != 2 {
		t.Errorf("got %d attachments; want 2", got)
	}
}

func TestCountAttachmentsAlternativeBodyPair(t *testing.T) {
	ent := parseRaw(t,
		`Content-Type: multipart/alternative; boundary="b"`,
		"",
		"--b",
		"Content-Type: text/plain",
		"",
		"plain body",
		"--b",
		"Content-Type: text/html",
		"",
		"<p>html body</p>",
		"--b--",
	)
	if got := CountAttachments(ent); got != 0 {
		t.Errorf("got %d attachments; want 0", got)
	}
}

func TestCountAttachmentsAlternativeWithTrailingLeaf(t *testing.T) {
	// Some clients append real attachments after the body pair inside the
	// alternative group itself.
	ent := parseRaw(t,
		`Content-Type: multipart/alternative; boundary="b"`,
		"",
		"--b",
		"Content-Type: text/plain",
		"",
		"plain body",
		"--b",
		"Content-Type: text/html",
		"",
		"<p>html body</p>",
		"--b",
		"Content-Type: image/png",
		"",
		"PNGDATA",
		"--b--",
	)
	if got := CountAttachments(ent); got != 1 {
		t.Errorf("got %d attachments; want 1", got)
	}
}

func TestCountAttachmentsMixedWithNestedAlternative(t *testing.T) {
	ent := parseRaw(t,
		`Content-Type: multipart/mixed; boundary="outer"`,
		"",
		"--outer",
		`Content-Type: multipart/alternative; boundary="inner"`,
		"",
		"--inner",
		"Content-Type: text/plain",
		"",
		"plain body",
		"--inner",
		"Content-Type: text/html",
		"",
		"<p>html body</p>",
		"--inner--",
		"--outer",
		"Content-Type: application/pdf",
		"",
		"PDFDATA",
		"--outer--",
	)
	if got := CountAttachments(ent); got != 1 {
		t.Errorf("got %d attachments; want 1", got)
	}
}

func TestCountAttachmentsBodyExemptionsApplyOnce(t *testing.T) {
	// A second alternative group gets no body exemption: both of its parts
	// count as attachments.
	ent := parseRaw(t,
		`Content-Type: multipart/mixed; boundary="outer"`,
		"",
		"--outer",
		`Content-Type: multipart/alternative; boundary="a"`,
		"",
		"--a",
		"Content-Type: text/plain",
		"",
		"first plain",
		"--a",
		"Content-Type: text/html",
		"",
		"<p>first html</p>",
		"--a--",
		"--outer",
		`Content-Type: multipart/alternative; boundary="c"`,
		"",
		"--c",
		"Content-Type: text/plain",
		"",
		"second plain",
		"--c",
		"Content-Type: text/html",
		"",
		"<p>second html</p>",
		"--c--",
		"--outer--",
	)
	if got := CountAttachments(ent); got != 2 {
		t.Errorf("got %d attachments; want 2", got)
	}
}

func TestCountAttachmentsHTMLOutsideAlternativeCounts(t *testing.T) {
	ent := parseRaw(t,
		`Content-Type: multipart/mixed; boundary="b"`,
		"",
		"--b",
		"Content-Type: text/plain",
		"",
		"the body",
		"--b",
		"Content-Type: text/html",
		"",
		"<p>attached html</p>",
		"--b--",
	)
	if got := CountAttachments(ent); got != 1 {
		t.Errorf("got %d attachments; want 1", got)
	}
}

func TestCountAttachmentsSecondPlainCounts(t *testing.T) {
	ent := parseRaw(t,
		`Content-Type: multipart/mixed; boundary="b"`,
		"",
		"--b",
		"Content-Type: text/plain",
		"",
		"the body",
		"--b",
		"Content-Type: text/plain",
		`Content-Disposition: attachment; filename="notes.txt"`,
		"",
		"attached notes",
		"--b--",
	)
	if got := CountAttachments(ent); got != 1 {
		t.Errorf("got %d attachments; want 1", got)
	}
}
