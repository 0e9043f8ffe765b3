package vocab

// Flag 是开启某类上下文规则的配置开关。
type Flag int

const (
	FlagEmphasizeStability Flag = iota
	FlagClarifyAlgorithms
	FlagClarifyTheorems
)

func (f Flag) String() string {
	switch f {
	case FlagEmphasizeStability:
		return "emphasize_stability"
	case FlagClarifyAlgorithms:
		return "clarify_algorithms"
	case FlagClarifyTheorems:
		return "clarify_theorems"
	}
	return "unknown"
}

// SpecialRule 是第二遍执行的上下文规则：仅在对应开关打开且检测到的子语境
// 属于 Domains 之一时生效。
type SpecialRule struct {
	Rule    Rule
	Flag    Flag
	Domains []Domain
}

// SpecialMatcher 是编译后的上下文规则。
type SpecialMatcher struct {
	*Matcher
	Flag    Flag
	Domains []Domain
}

// Applies 判断规则是否适用于某个分区。
func (s *SpecialMatcher) Applies(d Domain) bool {
	for _, dom := range s.Domains {
		if dom == d {
			return true
		}
	}
	return false
}

func emphasize(pattern string) Rule {
	return Rule{Pattern: pattern, Template: Static("$1"), Emphasize: true}
}

func explain(pattern, clarification string) Rule {
	return Rule{Pattern: pattern, Template: Static("$1")}.clarify(clarification)
}

// SpecialRules 返回内置的上下文规则。
func SpecialRules() []SpecialRule {
	stability := []Domain{Numerical, ODE}
	algorithms := []Domain{Numerical, ODE, LinearAlgebra}

	return []SpecialRule{
		{Rule: emphasize(`\b((?:unconditionally |conditionally |absolutely |zero-|A-|L-)?stable|unstable|stiff)\b`), Flag: FlagEmphasizeStability, Domains: stability},
		{Rule: emphasize(`\b(converges|diverges|convergent|divergent|blows up)\b`), Flag: FlagEmphasizeStability, Domains: stability},
		{Rule: emphasize(`\b(round-off error|truncation error|local error|global error)\b`), Flag: FlagEmphasizeStability, Domains: []Domain{Numerical}},

		{Rule: explain(`\b(RK4)\b`, "the classical fourth-order Runge-Kutta method"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(RK45)\b`, "an adaptive Runge-Kutta pair of orders four and five"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(BDF)\b`, "backward differentiation formula"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(Newton's method|Newton-Raphson)\b`, "an iterative root finder using the derivative"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(LU)\b`, "lower-upper factorization"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(QR)\b`, "orthogonal-triangular factorization"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(SVD)\b`, "singular value decomposition"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(CG)\b`, "the conjugate gradient method"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(GMRES)\b`, "generalized minimal residual method"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(FFT)\b`, "fast Fourier transform"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(CFL)\b`, "Courant-Friedrichs-Lewy"), Flag: FlagClarifyAlgorithms, Domains: algorithms},
		{Rule: explain(`\b(FEM)\b`, "finite element method"), Flag: FlagClarifyAlgorithms, Domains: algorithms},

		{Rule: explain(`\b(Hausdorff)\b`, "distinct points have disjoint neighborhoods"), Flag: FlagClarifyTheorems, Domains: []Domain{Topology}},
		{Rule: explain(`\b(compact)\b`, "every open cover has a finite subcover"), Flag: FlagClarifyTheorems, Domains: []Domain{Topology}},
		{Rule: explain(`\b(connected)\b`, "not a union of two disjoint nonempty open sets"), Flag: FlagClarifyTheorems, Domains: []Domain{Topology}},
		{Rule: explain(`\b(Lipschitz)\b`, "with bounded difference quotients"), Flag: FlagClarifyTheorems, Domains: []Domain{ODE}},
		{Rule: explain(`\b(holomorphic)\b`, "complex differentiable"), Flag: FlagClarifyTheorems, Domains: []Domain{Complex}},
	}
}
