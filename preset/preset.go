// Package preset maps named quality tiers onto concrete encoder parameters.
package preset

// Dither selects the palette dithering mode applied during encoding.
type Dither string

const (
	DitherNone           Dither = "none"
	DitherErrorDiffusion Dither = "error-diffusion"
)

// Preset is the fixed parameter bundle for one quality tier.
type Preset struct {
	Tier        string
	Colors      int    // palette size, at most 256
	Dither      Dither
	Effort      int    // encoder effort level, 1-10
	Compression int    // compression aggressiveness, 0 (min) to 9 (max)
}

var table = map[string]Preset{
	"low":    {Tier: "low", Colors: 64, Dither: DitherErrorDiffusion, Effort: 3, Compression: 9},
	"medium": {Tier: "medium", Colors: 128, Dither: DitherErrorDiffusion, Effort: 5, Compression: 6},
	"high":   {Tier: "high", Colors: 256, Dither: DitherErrorDiffusion, Effort: 8, Compression: 3},
	"ultra":  {Tier: "ultra", Colors: 256, Dither: DitherNone, Effort: 10, Compression: 0},
}

// Resolve returns the parameter bundle for a tier name. Match is
// case-sensitive; any unrecognized name resolves to the ultra bundle.
// Tier membership is validated by the request layer, not here.
func Resolve(tier string) Preset {
	if p, ok := table[tier]; ok {
		return p
	}
	return table["ultra"]
}
