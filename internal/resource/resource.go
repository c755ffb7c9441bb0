package resource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mjhalwa/usdb-syncer/internal/http"
	"github.com/mjhalwa/usdb-syncer/internal/log"
)

// ImageKind distinguishes the two image assets a song carries.
type ImageKind int

const (
	ImageKindCover ImageKind = iota
	ImageKindBackground
)

func (k ImageKind) String() string {
	switch k {
	case ImageKindCover:
		return "cover"
	case ImageKindBackground:
		return "background"
	default:
		panic(fmt.Sprintf("unknown image kind %d", int(k)))
	}
}

// Tag returns the filename tag, "CO" or "BG".
func (k ImageKind) Tag() string {
	switch k {
	case ImageKindCover:
		return "CO"
	case ImageKindBackground:
		return "BG"
	default:
		panic(fmt.Sprintf("unknown image kind %d", int(k)))
	}
}

// allowedDomains is the fixed set of hosts downloads may come from, in
// bare and "www."-prefixed form.
var allowedDomains = buildDomainSet(
	// videos/audios
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"universal-music.de",
	// covers/backgrounds
	"images.fanart.tv",
	"fanart.tv",
)

func buildDomainSet(domains ...string) map[string]struct{} {
	set := make(map[string]struct{}, 2*len(domains))
	for _, domain := range domains {
		set[domain] = struct{}{}
		set["www."+domain] = struct{}{}
	}
	return set
}

// IsDomainAllowed reports whether downloads from the given host are
// permitted.
func IsDomainAllowed(domain string) bool {
	_, ok := allowedDomains[domain]
	return ok
}

// URLFromVideoResource normalizes a video resource reference to a full
// URL: a full URL passes through, a host path gets an https prefix, and a
// bare id becomes a canonical YouTube watch URL.
func URLFromVideoResource(resource string) string {
	if strings.Contains(resource, "://") {
		return resource
	}
	if strings.Contains(resource, "/") {
		return "https://" + resource
	}
	return "https://www.youtube.com/watch?v=" + resource
}

// CheckURL validates rawURL's domain, and the domain it finally redirects
// to, against the allow-list. On rejection the offending domain is
// returned. A failing redirect probe counts as rejection: a host that
// cannot be vetted is not downloaded from.
func CheckURL(ctx context.Context, client *http.Client, rawURL string, logger *log.Logger) (bool, string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		logger.Debugf("unparsable resource url: %s", rawURL)
		return false, rawURL
	}
	domain := parsed.Host
	if !IsDomainAllowed(domain) {
		return false, domain
	}

	finalDomain, err := client.FinalHost(ctx, rawURL)
	if err != nil {
		logger.Debugf("redirect check for %s failed: %v", rawURL, err)
		return false, domain
	}
	if finalDomain != domain {
		logger.Debugf("%s finally redirects to %s", domain, finalDomain)
		if !IsDomainAllowed(finalDomain) {
			return false, finalDomain
		}
	}

	return true, ""
}
