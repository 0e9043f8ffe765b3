package subcontext

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Tag
	}{
		{"ode", `Consider the IVP $y' = f(t, y)$, $y(0) = y_0$.`, ODE},
		{"numerical", "The explicit scheme has step size h.", Numerical},
		{"topology", "Let X be a topological space.", Topology},
		{"compact", "Every closed subset of a compact space is compact.", Topology},
		{"linear algebra", `$\det(A) \neq 0$ so A has full rank.`, LinearAlgebra},
		{"calculus", `$\int_0^1 x^2 \, dx$`, Calculus},
		{"probability", `$X \sim \mathcal{N}(0, 1)$`, Probability},
		{"complex", "f is holomorphic on the disk.", Complex},
		{"set logic", `$A \subseteq B$`, SetLogic},
		{"algebra", "Every subgroup of a cyclic group is cyclic.", Algebra},
		{"number theory", `$a \equiv b \pmod{n}$`, NumberTheory},
		{"general", `$a + b$`, General},
		{"empty", "", General},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDetect_LeftBoundary(t *testing.T) {
	// "node" 和 "code" 不应被当作 ODE
	assert.Equal(t, General, Detect("the node code"))
	assert.Equal(t, ODE, Detect("Solve the ODEs below"))
}

func TestDetect_OrderWins(t *testing.T) {
	// 同时含 ODE 与数值关键词时，ODE 在前
	assert.Equal(t, ODE, Detect("RK4 for the initial value problem"))
	assert.Equal(t, Numerical, Detect("RK4 is a Runge-Kutta method"))
}

func TestScores(t *testing.T) {
	s := Scores("A compact Hausdorff space; the matrix is orthogonal.")
	assert.Equal(t, 2, s[Topology])
	assert.Equal(t, 2, s[LinearAlgebra])
	assert.Zero(t, s[Probability])
}

func TestTags(t *testing.T) {
	tags := Tags()
	assert.Equal(t, ODE, tags[0])
	assert.Equal(t, General, tags[len(tags)-1])
	assert.Len(t, tags, 11)
}

func TestDetect_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if Detect("compact space") != Topology {
					t.Error("unexpected tag")
				}
			}
		}()
	}
	wg.Wait()
}
