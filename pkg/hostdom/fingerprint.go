package hostdom

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the structure of a subtree: kinds, tags, text, sorted
// attributes and bound event names. Two trees with equal fingerprints render
// the same markup and listen to the same events.
func Fingerprint(n *Node) uint64 {
	d := xxhash.New()
	writeFingerprint(d, n)
	return d.Sum64()
}

func writeFingerprint(d *xxhash.Digest, n *Node) {
	d.WriteString(n.Kind.String())
	d.WriteString("\x00")
	switch n.Kind {
	case TextNode:
		d.WriteString(n.Text)
	case ElementNode:
		d.WriteString(n.Tag)
		for _, a := range n.sortedAttrs() {
			d.WriteString("\x01")
			d.WriteString(a.Key)
			d.WriteString("=")
			d.WriteString(fmt.Sprint(a.Value))
		}
		for _, event := range sortedEvents(n) {
			d.WriteString("\x02")
			d.WriteString(event)
		}
		d.WriteString("\x03")
		d.WriteString(strconv.Itoa(len(n.Children)))
		for _, c := range n.Children {
			writeFingerprint(d, c)
		}
	}
	d.WriteString("\x04")
}
