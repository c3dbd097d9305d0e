package garden_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphgarden/internal/garden"
	"github.com/san-kum/glyphgarden/internal/seed"
)

var _ = Describe("Registry", func() {
	var (
		theme *garden.Theme
		reg   *garden.Registry
	)

	BeforeEach(func() {
		var err error
		theme, err = garden.NewTheme(garden.DefaultChars, garden.DefaultColors, 10)
		Expect(err).NotTo(HaveOccurred())
		reg = garden.NewRegistry(theme, seed.NewRNG(7), garden.Viewport{W: 200, H: 100})
	})

	It("starts empty", func() {
		Expect(reg.Len()).To(BeZero())
	})

	It("caps growth at 1.6x density and evicts in FIFO order", func() {
		var spawned []uint64
		var evicted []uint64
		for i := 0; i < 20; i++ {
			ev := reg.SpawnAt(float64(i), float64(i))
			last := reg.Elements()[reg.Len()-1]
			spawned = append(spawned, last.ID)
			if ev != nil {
				evicted = append(evicted, ev.ID)
			}
			Expect(reg.Len()).To(BeNumerically("<=", 16))
		}
		Expect(reg.Len()).To(Equal(16))
		Expect(evicted).To(Equal(spawned[:4]))
		Expect(reg.Elements()[0].ID).To(Equal(spawned[4]))
	})

	It("places spawned elements exactly where asked", func() {
		reg.SpawnAt(12.5, 99)
		el := reg.Elements()[0]
		Expect(el.X).To(Equal(12.5))
		Expect(el.Y).To(Equal(99.0))
	})

	It("draws attributes within their ranges", func() {
		for i := 0; i < 16; i++ {
			reg.SpawnAt(1, 1)
		}
		for _, el := range reg.Elements() {
			Expect(el.Size).To(BeNumerically(">=", garden.MinSize))
			Expect(el.Size).To(BeNumerically("<", garden.MaxSize))
			Expect(el.Spin).To(BeNumerically(">=", -garden.MaxSpin))
			Expect(el.Spin).To(BeNumerically("<", garden.MaxSpin))
			Expect(el.Drift).To(BeNumerically(">=", garden.MinDrift))
			Expect(el.Drift).To(BeNumerically("<", garden.MaxDrift))
			Expect(el.Phase).To(BeNumerically("<", garden.MaxPhase))
			Expect(el.Kind.String()).To(BeElementOf("flower", "grass", "leaf"))
			Expect(theme.PaletteHex()).To(ContainElement(el.Color.Hex()))
		}
	})

	It("assigns increasing ids", func() {
		reg.Regenerate()
		ids := reg.Elements()
		for i := 1; i < len(ids); i++ {
			Expect(ids[i].ID).To(BeNumerically(">", ids[i-1].ID))
		}
	})

	It("yields an empty registry for zero density", func() {
		t, err := garden.NewTheme("x", []string{"#000000"}, 0)
		Expect(err).NotTo(HaveOccurred())
		r := garden.NewRegistry(t, seed.NewRNG(1), garden.Viewport{W: 10, H: 10})
		r.Regenerate()
		Expect(r.Len()).To(BeZero())
	})
})
