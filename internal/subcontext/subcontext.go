// Package subcontext 根据关键词猜测一段数学记号所属的细分领域，
// 用来选择 vocab 中对应的词表分区。
package subcontext

import (
	"regexp"
	"strings"
)

// Tag 是子语境标签，取值与 vocab.Domain 一一对应。
type Tag string

const (
	General       Tag = "general"
	ODE           Tag = "ode"
	Numerical     Tag = "numerical"
	Topology      Tag = "topology"
	LinearAlgebra Tag = "linear_algebra"
	Calculus      Tag = "calculus"
	Probability   Tag = "probability"
	Complex       Tag = "complex"
	SetLogic      Tag = "set_logic"
	Algebra       Tag = "algebra"
	NumberTheory  Tag = "number_theory"
)

// Entry 是检测表中的一项：任一关键词命中即返回 Tag。
type Entry struct {
	Keywords []string
	Tag      Tag
}

// entries 按检测顺序排列，先命中者优先。
var entries = []Entry{
	{Tag: ODE, Keywords: []string{
		"differential equation", "ode", "odes", "ivp", "bvp", "initial value", "initial condition",
		"boundary value", `\dot`, `\ddot`, "y'", "dy/dt", `\frac{dy}{dt}`, `\frac{dx}{dt}`,
		"wronskian", "lipschitz", "phase portrait", "equilibrium", "laplace transform",
	}},
	{Tag: Numerical, Keywords: []string{
		"numerical", "scheme", "discretiz", "step size", "runge", "rk4", "rk45", "euler's method",
		"euler method", "newton's method", "newton-raphson", "iteration", "iterate", "convergence rate",
		"truncation error", "round-off", "machine epsilon", "floating point", `\epsilon_{mach`,
		"stability region", "cfl", "finite difference", "finite element", "quadrature", "interpolat",
		"stiff", "bdf", "fem", "fft", "flops", "gmres", "conjugate gradient", "o(h", "fl(",
	}},
	{Tag: Topology, Keywords: []string{
		"topolog", "hausdorff", "compact", "connected", "open set", "closed set", "open cover",
		"homeomorph", "homotop", "neighborhood", "nbhd", "interior", "closure", "metric space",
		"manifold", "fundamental group", "continuous map",
	}},
	{Tag: LinearAlgebra, Keywords: []string{
		"matrix", "matrices", "eigen", "vector space", "linear map", "linear transformation",
		"determinant", `\det`, "rank", "span", "basis", "orthogonal", `\begin{pmatrix`,
		`\begin{bmatrix`, "transpose", "svd", "positive definite", "trace", `\operatorname{tr`,
		"null space", "linearly independent", "inner product",
	}},
	{Tag: Calculus, Keywords: []string{
		`\int`, "integral", "derivative", `\frac{d`, `\partial`, `\lim`, "limit", "differentiab",
		"continuous", `\nabla`, "gradient", "taylor", "series", `\sum`, "antiderivative",
	}},
	{Tag: Probability, Keywords: []string{
		"probabilit", "random", "expectation", "expected", `\mathbb{e}`, `\mathbb{p}`, "variance",
		"var(", "cov(", "distribut", "i.i.d", `\sim`, "gaussian", "mean", "almost surely",
		"martingale", "stochastic", "p(",
	}},
	{Tag: Complex, Keywords: []string{
		"holomorphic", "analytic", "complex", "residue", `\operatorname{res`, "contour", `\oint`,
		`\bar{z}`, `\overline{z}`, "cauchy-riemann", "meromorphic", "pole", "branch cut", `\mathbb{c}`,
	}},
	{Tag: SetLogic, Keywords: []string{
		"set", "subset", `\subseteq`, `\cup`, `\cap`, `\forall`, `\exists`, "cardinal", "power set",
		"injective", "surjective", "bijecti", "countable", `\vdash`, `\models`, "logic", "tautolog",
		`\emptyset`, `\in `,
	}},
	{Tag: Algebra, Keywords: []string{
		"group", "subgroup", "ring", "field", "ideal", "homomorph", "isomorph", `\cong`, "module",
		"quotient", "galois", `\trianglelefteq`, "automorph", "abelian", "cyclic",
	}},
	{Tag: NumberTheory, Keywords: []string{
		"prime", "divis", "divides", `\pmod`, "congruen", `\equiv`, "modulo", `\bmod`, "gcd",
		"lcm", "totient", "legendre", "diophantine", "integer", "quadratic residue",
	}},
}

type compiled struct {
	re  *regexp.Regexp
	tag Tag
}

var detectors = compileEntries(entries)

// compileEntries 把每组关键词编译成一个正则。关键词只要求左侧不是字母，
// 这样 "ode" 能命中 "odes" 而不会命中 "node"。
func compileEntries(list []Entry) []compiled {
	out := make([]compiled, 0, len(list))
	for _, e := range list {
		quoted := make([]string, len(e.Keywords))
		for i, k := range e.Keywords {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(k))
		}
		re := regexp.MustCompile(`(?:^|[^a-z])(?:` + strings.Join(quoted, "|") + `)`)
		out = append(out, compiled{re: re, tag: e.Tag})
	}
	return out
}

// Detect 返回第一个命中的子语境，没有命中时返回 General。
// 纯函数，可并发调用。
func Detect(text string) Tag {
	lower := strings.ToLower(text)
	for _, d := range detectors {
		if d.re.MatchString(lower) {
			return d.tag
		}
	}
	return General
}

// Scores 统计每个子语境的关键词命中次数，用于诊断输出。
func Scores(text string) map[Tag]int {
	lower := strings.ToLower(text)
	scores := make(map[Tag]int)
	for _, d := range detectors {
		if n := len(d.re.FindAllStringIndex(lower, -1)); n > 0 {
			scores[d.tag] = n
		}
	}
	return scores
}

// Tags 返回检测顺序下的全部标签，General 在最后。
func Tags() []Tag {
	out := make([]Tag, 0, len(entries)+1)
	for _, e := range entries {
		out = append(out, e.Tag)
	}
	return append(out, General)
}
