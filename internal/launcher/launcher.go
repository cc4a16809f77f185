// Package launcher turns tool descriptors into launch plans: the resolved
// tool URL, whether it may be embedded inline, and how to open it.
package launcher

import (
	"net/url"
	"strings"

	"github.com/honphysics/portal/internal/domain"
)

// NoToolMessage is shown when a tool descriptor has no URL.
const NoToolMessage = "No tool URL provided."

// SelfReferenceMessage explains why embedding is disabled for a tool that
// points back at the page hosting it.
const SelfReferenceMessage = "Embedding disabled because the link resolves to this same page. The open action still works."

// LaunchPlan describes how a tool is presented.
type LaunchPlan struct {
	URL           string
	Label         string
	Height        string
	Embed         bool
	SelfReference bool
	Message       string
}

// CanOpen reports whether the direct-open action is available.
func (p LaunchPlan) CanOpen() bool { return p.URL != "" }

// Resolve makes href absolute against pageURL. Root-relative hrefs resolve
// from the page origin, everything else relative to the page itself. When
// either side fails to parse, href is returned unchanged.
func Resolve(href, pageURL string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Plan builds the launch plan for tool as seen from pageURL.
func Plan(tool domain.ToolDescriptor, pageURL string) LaunchPlan {
	tool = tool.WithDefaults()
	if tool.Href == "" {
		return LaunchPlan{Message: NoToolMessage}
	}

	p := LaunchPlan{
		URL:    Resolve(tool.Href, pageURL),
		Label:  tool.Label,
		Height: tool.Height,
	}
	p.SelfReference = pageURL != "" && withoutFragment(p.URL) == withoutFragment(pageURL)
	p.Embed = tool.Launch == domain.LaunchEmbed && !p.SelfReference
	if p.SelfReference {
		p.Message = SelfReferenceMessage
	}
	return p
}

func withoutFragment(u string) string {
	if i := strings.IndexByte(u, '#'); i >= 0 {
		return u[:i]
	}
	return u
}
