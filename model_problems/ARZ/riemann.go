package ARZ

import (
	"encoding/json"
	"fmt"
	"strings"
)

// KernelRef names an approximate Riemann solver routine owned by the stepping engine
type KernelRef string

const (
	KernelHLL      KernelRef = "rp1_hll"
	KernelArzFWave KernelRef = "rp1_arz_traffic"
)

/*
	RiemannStrategy carries the kernel and the form its output takes as one value. HLL
	returns flux differences, the f-wave kernel returns fluctuations, and handing the
	engine either kernel with the other convention silently corrupts the update. The
	fields are unexported so the only strategies that exist are HLL and FWave below.
*/
type RiemannStrategy struct {
	name   string
	kernel KernelRef
	fwave  bool
}

var (
	HLL   = RiemannStrategy{name: "HLL", kernel: KernelHLL, fwave: false}
	FWave = RiemannStrategy{name: "F-Wave", kernel: KernelArzFWave, fwave: true}

	RiemannNames = map[string]RiemannStrategy{
		"hll":    HLL,
		"fwave":  FWave,
		"f-wave": FWave,
	}
)

func NewRiemannStrategy(label string) (rs RiemannStrategy, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if rs, ok = RiemannNames[label]; !ok {
		err = fmt.Errorf("unable to use riemann solver named %q, must be one of [hll fwave]: %w",
			label, ErrUnknownRiemannStrategy)
	}
	return
}

func (rs RiemannStrategy) Kernel() KernelRef { return rs.kernel }

// FWave is true when the kernel returns fluctuations rather than flux differences
func (rs RiemannStrategy) FWave() bool { return rs.fwave }

// NumWaves is fixed by the 2x2 ARZ system
func (rs RiemannStrategy) NumWaves() int { return 2 }

func (rs RiemannStrategy) IsZero() bool { return rs.kernel == "" }

func (rs RiemannStrategy) Print() (txt string) {
	form := "flux difference"
	if rs.fwave {
		form = "fluctuation"
	}
	txt = fmt.Sprintf("%s [%s, %s form]", rs.name, rs.kernel, form)
	return
}

func (rs RiemannStrategy) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"kernel":%q,"fwave":%t,"num_waves":%d}`,
		rs.kernel, rs.fwave, rs.NumWaves())), nil
}

// UnmarshalJSON accepts only the kernel/flag pairs of HLL and FWave
func (rs *RiemannStrategy) UnmarshalJSON(data []byte) (err error) {
	var (
		raw struct {
			Kernel KernelRef `json:"kernel"`
			FWave  bool      `json:"fwave"`
		}
	)
	if err = json.Unmarshal(data, &raw); err != nil {
		return
	}
	for _, candidate := range []RiemannStrategy{HLL, FWave} {
		if candidate.kernel == raw.Kernel {
			if candidate.fwave != raw.FWave {
				return fmt.Errorf("kernel %s paired with fwave = %t: %w", raw.Kernel, raw.FWave, ErrUnknownRiemannStrategy)
			}
			*rs = candidate
			return
		}
	}
	return fmt.Errorf("kernel %q: %w", raw.Kernel, ErrUnknownRiemannStrategy)
}
