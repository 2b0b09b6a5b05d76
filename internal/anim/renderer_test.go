package anim_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/san-kum/gradloop/internal/anim"
	"github.com/san-kum/gradloop/internal/config"
	"github.com/san-kum/gradloop/internal/encoder"
	"github.com/san-kum/gradloop/internal/rgb"
)

type recorder struct {
	frames []image.Image
	delays []int
	failAt int
}

func (r *recorder) WriteFrame(img image.Image, delay int) error {
	if r.failAt > 0 && len(r.frames) == r.failAt {
		return errors.New("disk full")
	}
	r.frames = append(r.frames, img)
	r.delays = append(r.delays, delay)
	return nil
}

type progressLog struct {
	values []float64
}

func (p *progressLog) OnFrame(index, total int, progress float64) {
	p.values = append(p.values, progress)
}

func pixel(img image.Image, x, y int) rgb.Color {
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return rgb.Color{R: c.R, G: c.G, B: c.B}
}

func monoConfig() *config.Config {
	cfg, err := config.FromArgs([]string{"#000000", "#FFFFFF", "10", "5", "2"})
	Expect(err).NotTo(HaveOccurred())
	return cfg
}

var _ = Describe("NewParams", func() {
	It("parses both colours", func() {
		cfg := monoConfig()
		cfg.End = "10, 20, 30"
		p, err := anim.NewParams(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Start).To(Equal(rgb.Color{}))
		Expect(p.End).To(Equal(rgb.Color{R: 10, G: 20, B: 30}))
		Expect(p.TotalFrames()).To(Equal(60))
	})

	DescribeTable("rejects invalid input",
		func(mutate func(*config.Config), want error) {
			cfg := monoConfig()
			mutate(cfg)
			_, err := anim.NewParams(cfg)
			Expect(err).To(MatchError(want))
		},
		Entry("zero width", func(c *config.Config) { c.Width = 0 }, config.ErrInvalidDimension),
		Entry("negative height", func(c *config.Config) { c.Height = -1 }, config.ErrInvalidDimension),
		Entry("zero duration", func(c *config.Config) { c.Duration = 0 }, config.ErrInvalidDimension),
		Entry("bad start", func(c *config.Config) { c.Start = "1,2" }, rgb.ErrWrongComponentCount),
		Entry("bad end", func(c *config.Config) { c.End = "#ZZZZZZ" }, rgb.ErrInvalidHexDigits),
	)
})

var _ = Describe("Renderer", func() {
	var (
		params anim.Params
		rec    *recorder
		log    *progressLog
		r      *anim.Renderer
	)

	BeforeEach(func() {
		var err error
		params, err = anim.NewParams(monoConfig())
		Expect(err).NotTo(HaveOccurred())
		rec = &recorder{}
		log = &progressLog{}
		r = anim.New()
		r.AddObserver(log)
	})

	It("renders the full ping-pong loop", func() {
		res, err := r.Run(context.Background(), params, rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(60))
		Expect(res.Delay).To(Equal(3))
		Expect(res.Peak).To(BeNumerically("~", 1, 1e-9))

		Expect(rec.frames).To(HaveLen(60))
		for _, f := range rec.frames {
			Expect(f.Bounds()).To(Equal(image.Rect(0, 0, 10, 5)))
		}
		Expect(rec.delays).To(HaveEach(3))

		Expect(log.values).To(HaveLen(60))
		Expect(log.values[0]).To(BeZero())
		Expect(log.values[30]).To(BeNumerically("~", 1, 1e-9))
		Expect(log.values[15]).To(BeNumerically("~", log.values[45], 1e-9))
	})

	It("scrolls from the start colour towards the end colour", func() {
		_, err := r.Run(context.Background(), params, rec)
		Expect(err).NotTo(HaveOccurred())

		first := rec.frames[0]
		Expect(pixel(first, 0, 0)).To(Equal(rgb.Color{}))
		Expect(pixel(first, 9, 4).R).To(BeNumerically("<", 128))

		mid := rec.frames[30]
		Expect(pixel(mid, 0, 0)).To(Equal(rgb.Color{R: 128, G: 128, B: 128}))
		Expect(pixel(mid, 9, 0)).To(Equal(rgb.Color{R: 242, G: 242, B: 242}))
	})

	It("logs every frame at debug level", func() {
		var buf bytes.Buffer
		r.AddObserver(anim.LogObserver{Logger: zerolog.New(&buf)})
		params.Timing.FrameRate = 1
		_, err := r.Run(context.Background(), params, rec)
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[1]).To(ContainSubstring(`"frame":1`))
		Expect(lines[1]).To(ContainSubstring(`"level":"debug"`))
	})

	It("honours a frame rate override", func() {
		params.Timing.FrameRate = 10
		res, err := r.Run(context.Background(), params, rec)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(20))
		Expect(rec.delays).To(HaveEach(10))
	})

	It("stops at the first write error", func() {
		rec.failAt = 7
		res, err := r.Run(context.Background(), params, rec)
		Expect(err).To(MatchError("disk full"))
		Expect(res.Frames).To(Equal(7))
		Expect(log.values).To(HaveLen(7))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.Run(ctx, params, rec)
		Expect(err).To(MatchError(context.Canceled))
		Expect(rec.frames).To(BeEmpty())
	})

	It("refuses an empty schedule", func() {
		params.Duration = 0
		_, err := r.Run(context.Background(), params, rec)
		Expect(err).To(HaveOccurred())
		Expect(rec.frames).To(BeEmpty())
	})

	It("produces a looping GIF through the encoder", func() {
		var buf bytes.Buffer
		sink := encoder.New(&buf, params.Width, params.Height,
			encoder.WithFallbackPalette(rgb.Ramp(params.Start, params.End, 256)))

		_, err := r.Run(context.Background(), params, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Close()).To(Succeed())

		out, err := gif.DecodeAll(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Image).To(HaveLen(60))
		Expect(out.LoopCount).To(Equal(0))
		Expect(out.Config.Width).To(Equal(10))
		Expect(out.Config.Height).To(Equal(5))
		Expect(pixel(out.Image[30], 0, 2)).To(Equal(rgb.Color{R: 128, G: 128, B: 128}))
	})

	It("rejects frames that do not match the canvas", func() {
		sink := encoder.New(&bytes.Buffer{}, params.Width+1, params.Height)
		_, err := r.Run(context.Background(), params, sink)
		Expect(err).To(MatchError(encoder.ErrFrameSizeMismatch))
		Expect(sink.Frames()).To(BeZero())
	})
})
