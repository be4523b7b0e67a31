package version

import (
	"regexp"
	"strconv"
	"strings"
)

// pep440Pattern accepts every spelling PEP 440 allows, including the
// non-normalized ones ("1.0-RC1", "v2.0.0-dev1").
var pep440Pattern = regexp.MustCompile(`(?i)^v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?P<pre>[-_.]?(?P<pre_l>alpha|beta|preview|pre|rc|a|b|c)[-_.]?(?P<pre_n>[0-9]+)?)?` +
	`(?P<post>(?:-(?P<post_n1>[0-9]+))|(?:[-_.]?(?P<post_l>post|rev|r)[-_.]?(?P<post_n2>[0-9]+)?))?` +
	`(?P<dev>[-_.]?(?P<dev_l>dev)[-_.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?$`)

type pep440 struct {
	epoch   int
	release []int
	preL    string
	preN    int
	hasPre  bool
	postN   int
	hasPost bool
	devN    int
	hasDev  bool
	local   string
}

func parsePEP440(v string) (pep440, bool) {
	m := pep440Pattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return pep440{}, false
	}
	group := func(name string) string { return m[pep440Pattern.SubexpIndex(name)] }
	num := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	var p pep440
	p.epoch = num(group("epoch"))
	for _, part := range strings.Split(group("release"), ".") {
		p.release = append(p.release, num(part))
	}
	if group("pre") != "" {
		p.hasPre = true
		p.preN = num(group("pre_n"))
		switch strings.ToLower(group("pre_l")) {
		case "a", "alpha":
			p.preL = "a"
		case "b", "beta":
			p.preL = "b"
		default:
			p.preL = "rc"
		}
	}
	if group("post") != "" {
		p.hasPost = true
		p.postN = num(group("post_n1") + group("post_n2"))
	}
	if group("dev") != "" {
		p.hasDev = true
		p.devN = num(group("dev_n"))
	}
	if local := group("local"); local != "" {
		p.local = strings.NewReplacer("-", ".", "_", ".").Replace(strings.ToLower(local))
	}
	return p, true
}

// String returns the normalized form.
func (p pep440) String() string {
	var b strings.Builder
	if p.epoch != 0 {
		b.WriteString(strconv.Itoa(p.epoch))
		b.WriteByte('!')
	}
	for i, n := range p.release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	if p.hasPre {
		b.WriteString(p.preL)
		b.WriteString(strconv.Itoa(p.preN))
	}
	if p.hasPost {
		b.WriteString(".post")
		b.WriteString(strconv.Itoa(p.postN))
	}
	if p.hasDev {
		b.WriteString(".dev")
		b.WriteString(strconv.Itoa(p.devN))
	}
	if p.local != "" {
		b.WriteByte('+')
		b.WriteString(p.local)
	}
	return b.String()
}

// Safe returns the PEP 440 normalized form of v, e.g. "1.2.3-beta1" becomes
// "1.2.3b1" and "22.4.1-dev1" becomes "22.4.1.dev1". Strings that are not
// versions are returned unchanged.
func Safe(v string) string {
	p, ok := parsePEP440(v)
	if !ok {
		return v
	}
	return p.String()
}

// PEP440Compliant reports whether v is a version in normalized PEP 440 form.
func PEP440Compliant(v string) bool {
	p, ok := parsePEP440(v)
	return ok && p.String() == v
}

// Strip removes a leading "v" from a version tag.
func Strip(v string) string {
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && v[1] >= '0' && v[1] <= '9' {
		return v[1:]
	}
	return v
}

// Equal reports whether two versions are the same after normalization.
func Equal(a, b string) bool {
	return Safe(a) == Safe(b)
}

// CheckDevelop reports whether v is a development release.
func CheckDevelop(v string) bool {
	p, ok := parsePEP440(v)
	return ok && p.hasDev
}
