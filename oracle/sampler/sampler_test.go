package sampler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/qlab-algos/oraclelab/oracle"
	"github.com/qlab-algos/oraclelab/oracle/bitvec"
)

func mustBV(t *testing.T, secret string) oracle.Spec {
	t.Helper()
	spec, err := oracle.EncodeBV(secret)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return spec
}

func mustSimon(t *testing.T, secret string) oracle.Spec {
	t.Helper()
	spec, err := oracle.EncodeSimon(secret)
	if err != nil {
		t.Fatalf("bugged test setup: %v", err)
	}
	return spec
}

func TestBVSampler(t *testing.T) {
	src, err := NewBV(mustBV(t, "10110"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, err := src.Sample(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 1 || h["10110"] != 7 {
		t.Errorf("Sample(7) == %v, want {10110: 7}", h)
	}
}

func TestBVSamplerRejectsWrongFamily(t *testing.T) {
	if _, err := NewBV(mustSimon(t, "110")); err == nil {
		t.Errorf("expected error: got nil")
	}
	if _, err := NewSimon(mustBV(t, "110"), rand.New(rand.NewSource(1))); err == nil {
		t.Errorf("expected error: got nil")
	}
}

func TestSimonOutcomesSatisfyPromise(t *testing.T) {
	for _, secret := range []string{"110", "0101", "000", "1"} {
		t.Run(secret, func(t *testing.T) {
			spec := mustSimon(t, secret)
			src, err := NewSimon(spec, rand.New(rand.NewSource(7)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			h, err := src.Sample(256)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.Shots() != 256 {
				t.Errorf("histogram holds %d shots, want 256", h.Shots())
			}
			for outcome := range h {
				z, err := bitvec.FromString(outcome)
				if err != nil {
					t.Fatalf("malformed outcome %q", outcome)
				}
				if !oracle.VerifyConsistency(spec.Secret, z) {
					t.Errorf("outcome %s is not orthogonal to %s", outcome, secret)
				}
			}
		})
	}
}

func TestSimonSamplerRecoversSecret(t *testing.T) {
	for _, secret := range []string{"110", "1011", "010010"} {
		t.Run(secret, func(t *testing.T) {
			spec := mustSimon(t, secret)
			src, err := NewSimon(spec, rand.New(rand.NewSource(1234)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _, err := oracle.Recover(oracle.RecoverOpts{
				Source: src,
				N:      len(secret),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != secret {
				t.Errorf("recovered %s, want %s", got, secret)
			}
		})
	}
}

func TestSimonSamplerRequiresRand(t *testing.T) {
	if _, err := NewSimon(mustSimon(t, "110"), nil); err == nil {
		t.Errorf("expected error: got nil")
	}
}

func TestDeutschJozsaSampler(t *testing.T) {
	tcs := []struct {
		name string
		spec func() (oracle.Spec, error)
		eout string
	}{
		{
			name: "constant zero",
			spec: func() (oracle.Spec, error) { return oracle.EncodeDJConstant(3, false) },
			eout: "000",
		}, {
			name: "constant one",
			spec: func() (oracle.Spec, error) { return oracle.EncodeDJConstant(3, true) },
			eout: "000",
		}, {
			name: "balanced",
			spec: func() (oracle.Spec, error) { return oracle.EncodeDJBalanced("101") },
			eout: "111",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := tc.spec()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			src, err := NewDeutschJozsa(spec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			h, err := src.Sample(5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(h) != 1 || h[tc.eout] != 5 {
				t.Errorf("Sample(5) == %v, want {%s: 5}", h, tc.eout)
			}
			z, _ := bitvec.FromString(tc.eout)
			wantConstant := tc.eout == "000"
			if Constant(z) != wantConstant {
				t.Errorf("Constant(%s) == %v, want %v", tc.eout, Constant(z), wantConstant)
			}
		})
	}
}

func TestCorrupterFullFlip(t *testing.T) {
	src, err := NewBV(mustBV(t, "1100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := NewCorrupter(src, 1, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, err := c.Sample(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 1 || h["0011"] != 4 {
		t.Errorf("Sample(4) == %v, want {0011: 4}", h)
	}
}

func TestCorrupterZeroFlipIsTransparent(t *testing.T) {
	src, err := NewBV(mustBV(t, "1100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := NewCorrupter(src, 0, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, err := c.Sample(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 1 || h["1100"] != 4 {
		t.Errorf("Sample(4) == %v, want {1100: 4}", h)
	}
}

func TestCorrupterValidatesArgs(t *testing.T) {
	src, _ := NewBV(mustBV(t, "1"))
	tcs := []struct {
		name string
		src  oracle.Source
		prob float64
		rng  *rand.Rand
	}{
		{name: "nil source", src: nil, prob: 0.5, rng: rand.New(rand.NewSource(1))},
		{name: "nil rng", src: src, prob: 0.5, rng: nil},
		{name: "negative prob", src: src, prob: -0.1, rng: rand.New(rand.NewSource(1))},
		{name: "prob above one", src: src, prob: 1.1, rng: rand.New(rand.NewSource(1))},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCorrupter(tc.src, tc.prob, tc.rng); err == nil {
				t.Errorf("expected error: got nil")
			}
		})
	}
}

func TestUniformity(t *testing.T) {
	t.Run("exactly uniform", func(t *testing.T) {
		h := oracle.Histogram{"00": 25, "01": 25, "10": 25, "11": 25}
		p, err := Uniformity(h, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p < 0.99 {
			t.Errorf("p-value for exactly uniform counts == %v, want ~1", p)
		}
	})
	t.Run("degenerate", func(t *testing.T) {
		h := oracle.Histogram{"00": 1000}
		p, err := Uniformity(h, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p > 1e-6 {
			t.Errorf("p-value for a point mass == %v, want ~0", p)
		}
	})
	t.Run("simon sampler looks uniform", func(t *testing.T) {
		spec := mustSimon(t, "110")
		src, err := NewSimon(spec, rand.New(rand.NewSource(99)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		h, err := src.Sample(4096)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// The dual space of a nonzero 3-bit secret has 4 elements.
		p, err := Uniformity(h, 4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p < 1e-3 {
			t.Errorf("uniform sampler rejected at p == %v", p)
		}
	})
	t.Run("bad support", func(t *testing.T) {
		for _, support := range []int{0, 1} {
			if _, err := Uniformity(oracle.Histogram{"0": 1}, support); err == nil {
				t.Errorf("expected error for support %d: got nil", support)
			}
		}
	})
}

func TestSampleRejectsNonPositiveShots(t *testing.T) {
	bv, _ := NewBV(mustBV(t, "101"))
	simon, _ := NewSimon(mustSimon(t, "101"), rand.New(rand.NewSource(1)))
	srcs := []struct {
		name string
		src  oracle.Source
	}{
		{"bv", bv},
		{"simon", simon},
	}
	for _, tc := range srcs {
		for _, shots := range []int{0, -1} {
			t.Run(fmt.Sprintf("%s %d", tc.name, shots), func(t *testing.T) {
				if _, err := tc.src.Sample(shots); err == nil {
					t.Errorf("expected error: got nil")
				}
			})
		}
	}
}
