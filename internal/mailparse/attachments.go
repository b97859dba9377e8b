package mailparse

import (
	"io"

	"github.com/emersion/go-message"
)

// CountAttachments walks the MIME tree of a parsed message in document order
// and counts the parts a user would call attachments.
//
// The walk tracks the content type of the most recently entered multipart
// container, not a strict parent stack: mail clients commonly append real
// attachments after the text/html pair of a multipart/alternative group, and
// this heuristic counts those correctly. The body exemptions (first plain
// text part, first plain/HTML alternative pair) apply at most once per
// message, even across several alternative containers.
func CountAttachments(ent *message.Entity) int {
	w := &attachmentWalk{}
	w.visit(ent)
	return w.count
}

type attachmentWalk struct {
	count int

	lastMultipart string // content type of the most recently entered container
	sawPlainBody  bool
	sawAltPlain   bool
	sawAltHTML    bool
}

func (w *attachmentWalk) visit(ent *message.Entity) {
	ctype, _, err := ent.Header.ContentType()

	if mr := ent.MultipartReader(); mr != nil {
		// Containers are never counted, only entered.
		w.lastMultipart = ctype
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil && !message.IsUnknownCharset(err) {
				break
			}
			if part == nil {
				break
			}
			w.visit(part)
		}
		return
	}

	if err != nil {
		ctype = ""
	}
	w.leaf(ctype)
}

func (w *attachmentWalk) leaf(ctype string) {
	if w.lastMultipart == "multipart/alternative" {
		if ctype == "text/plain" && !w.sawAltPlain {
			w.sawAltPlain = true
			return
		}
		if ctype == "text/html" && !w.sawAltHTML {
			w.sawAltHTML = true
			return
		}
	}

	if ctype == "text/plain" && w.lastMultipart != "multipart/alternative" {
		// The first plain text part is the message body.
		if !w.sawPlainBody {
			w.sawPlainBody = true
			return
		}
		w.count++
		return
	}

	// Anything else is assumed to be a user-supplied attachment.
	w.count++
}
