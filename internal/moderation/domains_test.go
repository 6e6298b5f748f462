package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOfficial(t *testing.T) {
	assert := assert.New(t)
	v := NewDomainValidator([]string{"niconetwork.cfd"})

	fixtures := []struct {
		link string
		out  bool
	}{
		{link: "https://WWW.NicoNetwork.cfd/page", out: true},
		{link: "https://niconetwork.cfd", out: true},
		{link: "niconetwork.cfd", out: true},
		{link: "http://app.niconetwork.cfd/login?x=1", out: true},
		{link: "https://niconetwork.cfd.evil.com", out: false},
		{link: "https://evilniconetwork.cfd", out: false},
		{link: "http://totally-fake-site.com", out: false},
		{link: "https://www.", out: false},
		{link: "http://[::1", out: false},
		{link: "", out: false},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, v.IsOfficial(fix.link), fix.link)
	}
}

func TestAllOfficial(t *testing.T) {
	assert := assert.New(t)
	v := NewDomainValidator([]string{" WWW.NicoNetwork.CFD ", ""})

	assert.True(v.AllOfficial(map[string]struct{}{}))
	assert.True(v.AllOfficial(map[string]struct{}{"https://niconetwork.cfd/a": {}}))
	assert.False(v.AllOfficial(map[string]struct{}{
		"https://niconetwork.cfd/a": {},
		"https://elsewhere.io":      {},
	}))
}
