package garden_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/noise"
	"github.com/san-kum/glyphgarden/internal/seed"
)

const (
	vpW = 1024.0
	vpH = 768.0
)

func newEngine(opts garden.Options) *garden.Engine {
	if opts.Width == 0 {
		opts.Width, opts.Height = vpW, vpH
	}
	if opts.Seeds == (seed.Seeds{}) {
		opts.Seeds = seed.Day{Year: 2026, Month: 10, Day: 17}.Seeds()
	}
	e, err := garden.New(opts)
	Expect(err).NotTo(HaveOccurred())
	return e
}

type snapshot struct {
	x, y, angle, phase float64
}

func capture(e *garden.Engine) []snapshot {
	out := make([]snapshot, 0, len(e.Elements()))
	for _, el := range e.Elements() {
		out = append(out, snapshot{el.X, el.Y, el.Angle, el.Phase})
	}
	return out
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var _ = Describe("Engine", func() {
	Describe("seeding", func() {
		It("reproduces a day exactly", func() {
			a := newEngine(garden.Options{})
			b := newEngine(garden.Options{})
			Expect(capture(a)).To(Equal(capture(b)))

			for i := 0; i < 300; i++ {
				if i == 40 {
					a.SpawnAt(100, 200)
					b.SpawnAt(100, 200)
				}
				if i == 120 {
					a.Regenerate()
					b.Regenerate()
				}
				a.Tick()
				b.Tick()
				Expect(capture(a)).To(Equal(capture(b)))
				Expect(a.Glyph()).To(Equal(b.Glyph()))
			}
		})

		It("differs between days", func() {
			a := newEngine(garden.Options{})
			b := newEngine(garden.Options{Seeds: seed.Day{Year: 2026, Month: 10, Day: 18}.Seeds()})
			Expect(capture(a)).NotTo(Equal(capture(b)))
		})

		It("rejects an unknown noise backend", func() {
			_, err := garden.New(garden.Options{Seeds: seed.Fixed(1), Noise: "cellular"})
			Expect(err).To(MatchError(noise.ErrUnknownBackend))
		})
	})

	Describe("regeneration", func() {
		It("creates the default density split 70/30", func() {
			e := newEngine(garden.Options{})
			Expect(e.Elements()).To(HaveLen(garden.DefaultDensity))
		})

		DescribeTable("splits density between lower and upper halves",
			func(d int) {
				e := newEngine(garden.Options{})
				Expect(e.ApplyTheme(garden.ThemeUpdate{Density: intPtr(d)})).To(Succeed())
				e.Regenerate()

				els := e.Elements()
				Expect(els).To(HaveLen(d))
				lower := 7 * d / 10
				for i, el := range els {
					if i < lower {
						Expect(el.Y).To(BeNumerically(">=", vpH/2))
					} else {
						Expect(el.Y).To(BeNumerically("<=", vpH/2))
					}
					Expect(el.X).To(BeNumerically(">=", 0))
					Expect(el.X).To(BeNumerically("<=", vpW))
				}
			},
			Entry("zero", 0),
			Entry("one", 1),
			Entry("ten", 10),
			Entry("odd", 33),
			Entry("large", 100),
			Entry("ninety", 90),
			Entry("one seventy", 170),
		)

		It("regenerates on density change before the next tick", func() {
			e := newEngine(garden.Options{})
			old := e.Elements()[0]
			Expect(e.ApplyTheme(garden.ThemeUpdate{Density: intPtr(12)})).To(Succeed())
			Expect(e.Elements()).To(HaveLen(12))
			Expect(e.Elements()[0]).NotTo(BeIdenticalTo(old))
		})

		It("does not regenerate when density is unchanged", func() {
			e := newEngine(garden.Options{})
			first := e.Elements()[0]
			Expect(e.ApplyTheme(garden.ThemeUpdate{Density: intPtr(garden.DefaultDensity)})).To(Succeed())
			Expect(e.Elements()[0]).To(BeIdenticalTo(first))
		})

		It("lays out afresh on resize", func() {
			e := newEngine(garden.Options{})
			e.Resize(400, 300)
			Expect(e.Viewport()).To(Equal(garden.Viewport{W: 400, H: 300}))
			Expect(e.Elements()).To(HaveLen(garden.DefaultDensity))
			for _, el := range e.Elements() {
				Expect(el.X).To(BeNumerically("<=", 400))
				Expect(el.Y).To(BeNumerically("<=", 300))
			}
		})
	})

	Describe("motion", func() {
		It("keeps every element inside the wrap margin", func() {
			e := newEngine(garden.Options{Width: 120, Height: 90})
			m := garden.WrapMargin
			for i := 0; i < 1500; i++ {
				e.Tick()
				for _, el := range e.Elements() {
					Expect(el.X).To(BeNumerically(">=", -m))
					Expect(el.X).To(BeNumerically("<=", 120+m))
					Expect(el.Y).To(BeNumerically(">=", -m))
					Expect(el.Y).To(BeNumerically("<=", 90+m))
				}
			}
		})

		It("advances phase and angle each tick", func() {
			e := newEngine(garden.Options{})
			before := capture(e)
			Expect(e.Tick()).To(BeTrue())
			after := capture(e)
			for i := range before {
				Expect(after[i].phase).To(BeNumerically("~", before[i].phase+garden.PhaseStep, 1e-9))
				Expect(after[i].angle).To(BeNumerically("~", before[i].angle+e.Elements()[i].Spin, 1e-12))
			}
			Expect(e.Ticks()).To(Equal(uint64(1)))
		})
	})

	Describe("freeze", func() {
		It("skips motion while soft-frozen but keeps ticking", func() {
			e := newEngine(garden.Options{GlyphInterval: 1})
			e.SetSoftFrozen(true)
			before := capture(e)
			for i := 0; i < 50; i++ {
				Expect(e.Tick()).To(BeTrue())
			}
			Expect(capture(e)).To(Equal(before))
			Expect(e.Ticks()).To(Equal(uint64(50)))

			e.SetSoftFrozen(false)
			e.Tick()
			Expect(capture(e)).NotTo(Equal(before))
		})

		It("changes nothing while paused", func() {
			e := newEngine(garden.Options{})
			Expect(e.TogglePause()).To(BeTrue())
			before := capture(e)
			glyph := e.Glyph()
			for i := 0; i < 200; i++ {
				Expect(e.Tick()).To(BeFalse())
			}
			Expect(capture(e)).To(Equal(before))
			Expect(e.Glyph()).To(Equal(glyph))
			Expect(e.Ticks()).To(BeZero())
		})

		It("keeps a manual pause when the page becomes visible again", func() {
			e := newEngine(garden.Options{})
			e.TogglePause()
			e.SetHidden(true)
			e.SetHidden(false)
			Expect(e.Paused()).To(BeTrue())
			e.TogglePause()
			Expect(e.Paused()).To(BeFalse())
		})

		It("resumes after an automatic pause", func() {
			e := newEngine(garden.Options{})
			e.SetHidden(true)
			Expect(e.Paused()).To(BeTrue())
			Expect(e.Tick()).To(BeFalse())
			e.SetHidden(false)
			Expect(e.Tick()).To(BeTrue())
		})
	})

	Describe("glyph cycling", func() {
		It("draws glyphs from the current pool", func() {
			e := newEngine(garden.Options{GlyphInterval: 1})
			Expect(e.ApplyTheme(garden.ThemeUpdate{Chars: strPtr(" 花 草\t叶 ")})).To(Succeed())
			for i := 0; i < 200; i++ {
				e.Tick()
				Expect([]rune("花草叶")).To(ContainElement(e.Glyph()))
			}
		})

		It("changes glyph on the configured period", func() {
			e := newEngine(garden.Options{FPS: 30})
			seen := map[rune]bool{e.Glyph(): true}
			for i := 0; i < 45*20; i++ {
				e.Tick()
				seen[e.Glyph()] = true
			}
			Expect(len(seen)).To(BeNumerically(">", 1))
		})
	})

	Describe("reduced motion", func() {
		It("lowers the tick rate and stops rotation", func() {
			e := newEngine(garden.Options{ReducedMotion: true})
			Expect(e.FPS()).To(Equal(garden.ReducedFPS))
			for _, el := range e.Elements() {
				Expect(el.Spin).To(BeZero())
			}
			Expect(e.SpawnAt(10, 10)).To(BeNil())
			last := e.Elements()[len(e.Elements())-1]
			Expect(last.Spin).To(BeZero())
		})
	})

	Describe("theme", func() {
		It("recolors only future elements", func() {
			e := newEngine(garden.Options{})
			old := make(map[uint64]string)
			for _, el := range e.Elements() {
				old[el.ID] = el.Color.Hex()
			}
			Expect(e.ApplyTheme(garden.ThemeUpdate{Colors: []string{"#ff00ff"}})).To(Succeed())
			for _, el := range e.Elements() {
				Expect(el.Color.Hex()).To(Equal(old[el.ID]))
			}
			e.SpawnAt(5, 5)
			last := e.Elements()[len(e.Elements())-1]
			Expect(last.Color.Hex()).To(Equal("#ff00ff"))
		})

		It("falls back to the last good pool and palette", func() {
			e := newEngine(garden.Options{})
			err := e.ApplyTheme(garden.ThemeUpdate{
				Chars:   strPtr("   "),
				Colors:  []string{"nope", " "},
				Density: intPtr(-4),
			})
			Expect(err).To(MatchError(garden.ErrEmptyChars))
			Expect(err).To(MatchError(garden.ErrEmptyPalette))
			Expect(err).To(MatchError(garden.ErrBadColor))
			Expect(err).To(MatchError(garden.ErrNegativeDensity))

			Expect(e.Theme().CharString()).To(Equal(garden.DefaultChars))
			Expect(e.Theme().PaletteHex()).To(HaveLen(len(garden.DefaultColors)))
			Expect(e.Theme().Density()).To(Equal(garden.DefaultDensity))
		})

		It("keeps valid colors from a partly bad list", func() {
			e := newEngine(garden.Options{})
			err := e.ApplyTheme(garden.ThemeUpdate{Colors: []string{"#112233", "bad"}})
			Expect(err).To(MatchError(garden.ErrBadColor))
			Expect(e.Theme().PaletteHex()).To(Equal([]string{"#112233"}))
		})

		It("does not share the caller's theme", func() {
			t := garden.DefaultTheme()
			e := newEngine(garden.Options{Theme: t})
			Expect(e.ApplyTheme(garden.ThemeUpdate{Density: intPtr(3)})).To(Succeed())
			Expect(t.Density()).To(Equal(garden.DefaultDensity))
		})
	})
})
