package card

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidContent = errors.New("card: invalid content")
	ErrUnknownVoucher = errors.New("card: unknown voucher")
)

// Voucher is a redeemable promise printed on the card.
type Voucher struct {
	Slug  string `yaml:"slug" json:"slug"`
	Title string `yaml:"title" json:"title"`
	Note  string `yaml:"note" json:"note"`
}

// Content is everything written on the card. Note may use the {HER},
// {NICK} and {ME} placeholders.
type Content struct {
	HerName  string    `yaml:"her_name" json:"her_name"`
	Nickname string    `yaml:"nickname" json:"nickname"`
	FromName string    `yaml:"from_name" json:"from_name"`
	Note     string    `yaml:"note" json:"-"`
	Reasons  []string  `yaml:"reasons" json:"-"`
	Vouchers []Voucher `yaml:"vouchers" json:"-"`
	Motion   bool      `yaml:"motion" json:"motion"`
}

// Default returns the built-in card used when no content file is configured.
func Default() *Content {
	return &Content{
		HerName:  "Katelynn",
		Nickname: "Unc",
		FromName: "Danny",
		Note: `Happy Birthday, {HER}!

I love how you light up small moments: flowers at the store, goofy mini-golf swings, and how hard you laugh when Tundra goes full zoomies. Thanks for letting me call you {NICK} and still putting up with my "you're old" jokes.

This year, I hope you get cozy mornings, easy wins, and a million little reasons to smile. Also: Mitzi insists on extra cuddles.

Love,
{ME}`,
		Reasons: []string{
			"You somehow make blue feel even prettier.",
			"You're gentle with people and plants (flower whisperer).",
			"Your mini-golf trash talk is elite.",
			"Tundra picked you first, can't argue with that.",
			"You laugh with your whole face (it's the best).",
			"You turn ordinary plans into something special.",
			"You encourage me in the exact way I need.",
			"Your texts make my day feel lighter.",
			"You roll with my 'Unc' jokes like a champ.",
			"You give top-tier hugs. Period.",
		},
		Vouchers: withSlugs([]Voucher{
			{Title: "Blue-Everything Day", Note: "Flowers + blueberry pancakes + blue outfit"},
			{Title: "Mini-Golf Rematch", Note: "Loser buys ice cream"},
			{Title: "Dog Park Adventure", Note: "Tundra's choice of route"},
			{Title: "Cozy Night In", Note: "I'll cook + your movie"},
			{Title: "Mitzi Snuggle Hour", Note: "Mandatory plush cuddle time"},
		}),
		Motion: true,
	}
}

// Load reads content from a YAML file. An empty path returns Default.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card content: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML content. Missing slugs are derived from titles.
func Parse(data []byte) (*Content, error) {
	c := &Content{Motion: true}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if strings.TrimSpace(c.HerName) == "" {
		return nil, fmt.Errorf("%w: her_name is required", ErrInvalidContent)
	}
	c.Vouchers = withSlugs(c.Vouchers)

	seen := make(map[string]bool, len(c.Vouchers))
	for _, v := range c.Vouchers {
		if v.Slug == "" {
			return nil, fmt.Errorf("%w: voucher %q has no usable slug", ErrInvalidContent, v.Title)
		}
		if seen[v.Slug] {
			return nil, fmt.Errorf("%w: duplicate voucher %q", ErrInvalidContent, v.Slug)
		}
		seen[v.Slug] = true
	}
	return c, nil
}

// Letter returns the note with its placeholders filled in.
func (c *Content) Letter() string {
	nick := c.Nickname
	if nick == "" {
		nick = c.HerName
	}
	return strings.NewReplacer(
		"{HER}", c.HerName,
		"{NICK}", nick,
		"{ME}", c.FromName,
	).Replace(c.Note)
}

// NumberedReasons returns the reasons prefixed "1. ", "2. " and so on.
func (c *Content) NumberedReasons() []string {
	out := make([]string, len(c.Reasons))
	for i, r := range c.Reasons {
		out[i] = strconv.Itoa(i+1) + ". " + r
	}
	return out
}

func (c *Content) Voucher(slug string) (Voucher, bool) {
	for _, v := range c.Vouchers {
		if v.Slug == slug {
			return v, true
		}
	}
	return Voucher{}, false
}

func withSlugs(vs []Voucher) []Voucher {
	for i := range vs {
		if vs[i].Slug == "" {
			vs[i].Slug = Slugify(vs[i].Title)
		}
	}
	return vs
}

// Slugify lower-cases s and joins its letters and digits with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
