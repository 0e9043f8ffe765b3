package vocab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var greekLower = []struct{ cmd, uni, spoken string }{
	{"alpha", "α", "alpha"}, {"beta", "β", "beta"}, {"gamma", "γ", "gamma"},
	{"delta", "δ", "delta"}, {"epsilon", "ε", "epsilon"}, {"varepsilon", "", "epsilon"},
	{"zeta", "ζ", "zeta"}, {"eta", "η", "eta"}, {"theta", "θ", "theta"},
	{"vartheta", "ϑ", "theta"}, {"iota", "ι", "iota"}, {"kappa", "κ", "kappa"},
	{"lambda", "λ", "lambda"}, {"mu", "μ", "mu"}, {"nu", "ν", "nu"},
	{"xi", "ξ", "xi"}, {"pi", "π", "pi"}, {"varpi", "ϖ", "pi"},
	{"rho", "ρ", "rho"}, {"varrho", "ϱ", "rho"}, {"sigma", "σ", "sigma"},
	{"varsigma", "ς", "sigma"}, {"tau", "τ", "tau"}, {"upsilon", "υ", "upsilon"},
	{"phi", "ϕ", "phi"}, {"varphi", "φ", "phi"}, {"chi", "χ", "chi"},
	{"psi", "ψ", "psi"}, {"omega", "ω", "omega"},
}

var greekUpper = []struct{ cmd, uni string }{
	{"Gamma", "Γ"}, {"Delta", "Δ"}, {"Theta", "Θ"}, {"Lambda", "Λ"}, {"Xi", "Ξ"},
	{"Pi", "Π"}, {"Sigma", "Σ"}, {"Upsilon", "Υ"}, {"Phi", "Φ"}, {"Psi", "Ψ"},
	{"Omega", "Ω"},
}

var namedFunctions = []struct{ cmd, spoken string }{
	{"sin", "sine"}, {"cos", "cosine"}, {"tan", "tangent"}, {"cot", "cotangent"},
	{"sec", "secant"}, {"csc", "cosecant"}, {"arcsin", "arc sine"},
	{"arccos", "arc cosine"}, {"arctan", "arc tangent"}, {"sinh", "hyperbolic sine"},
	{"cosh", "hyperbolic cosine"}, {"tanh", "hyperbolic tangent"},
	{"ln", "the natural log of"}, {"log", "log"}, {"exp", "the exponential of"},
}

var blackboard = map[string]string{
	"R": "the real numbers",
	"C": "the complex numbers",
	"Q": "the rational numbers",
	"Z": "the integers",
	"N": "the natural numbers",
	"F": "the field F",
	"H": "the quaternions",
}

var smallFractions = map[string]string{
	"1/2": "one half", "1/3": "one third", "2/3": "two thirds", "1/4": "one quarter",
	"3/4": "three quarters", "1/5": "one fifth", "1/6": "one sixth", "1/8": "one eighth",
}

// ordinal 把整数字符串转换为序数词，如 "4" -> "4th"，非整数原样返回并加 "th"。
func ordinal(s string) string {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return humanize.Ordinal(n)
	}
	if s == "" {
		return s
	}
	return s + "th"
}

// power 把指数读作口语。
func power(exp string) string {
	exp = strings.TrimSpace(exp)
	switch exp {
	case "2":
		return "squared"
	case "3":
		return "cubed"
	case "-1", "minus 1":
		return "inverse"
	case "":
		return ""
	}
	if n, err := strconv.Atoi(exp); err == nil && n >= 0 {
		return "to the " + humanize.Ordinal(n) + " power"
	}
	if len(exp) == 1 {
		return "to the " + exp
	}
	return "to the power " + exp
}

// fraction 把分子分母读作口语。
func fraction(num, den string) string {
	num, den = strings.TrimSpace(num), strings.TrimSpace(den)
	if spoken, ok := smallFractions[num+"/"+den]; ok {
		return spoken
	}
	if strings.ContainsAny(num, " ") || strings.ContainsAny(den, " ") {
		return "the fraction " + num + " over " + den + ","
	}
	return num + " over " + den
}

// root 读作 n 次方根。
func root(index, body string) string {
	switch strings.TrimSpace(index) {
	case "2", "":
		return "the square root of " + body
	case "3":
		return "the cube root of " + body
	}
	return "the " + ordinal(index) + " root of " + body
}

// matrix 把 \begin{pmatrix} 的内容读作行列表。
func matrix(body string) string {
	rows := splitRows(body)
	if len(rows) == 0 {
		return "the empty matrix"
	}
	cols := len(splitCells(rows[0]))
	spokenRows := make([]string, 0, len(rows))
	for _, row := range rows {
		spokenRows = append(spokenRows, strings.Join(splitCells(row), ", "))
	}
	return fmt.Sprintf("the %d by %d matrix with rows %s;", len(rows), cols, strings.Join(spokenRows, "; "))
}

// cases 把分段定义读作 "a if b; c otherwise"。
func cases(body string) string {
	rows := splitRows(body)
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := splitCells(row)
		switch {
		case len(cells) == 1:
			parts = append(parts, cells[0])
		case strings.Contains(cells[1], "otherwise"), strings.Contains(cells[1], "else"):
			parts = append(parts, cells[0]+" otherwise")
		default:
			cond := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cells[1]), "if"))
			parts = append(parts, cells[0]+" if "+cond)
		}
	}
	return "defined piecewise as " + strings.Join(parts, "; ") + ";"
}

func splitRows(body string) []string {
	var rows []string
	for _, r := range strings.Split(body, `\\`) {
		r = strings.TrimSpace(r)
		if r != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

func splitCells(row string) []string {
	cells := strings.Split(row, "&")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func generalRules() []Rule {
	var rules []Rule

	for _, g := range greekLower {
		rules = append(rules, cmd(g.cmd, g.spoken))
		if g.uni != "" {
			rules = append(rules, sym(g.uni, g.spoken))
		}
	}
	for _, g := range greekUpper {
		spoken := "capital " + strings.ToLower(g.cmd)
		rules = append(rules, cmd(g.cmd, spoken), sym(g.uni, spoken))
	}

	for _, f := range namedFunctions {
		rules = append(rules, cmd(f.cmd, f.spoken))
		if strings.HasPrefix(f.spoken, "the ") {
			continue
		}
		rules = append(rules,
			rx(`\\`+f.cmd+`\^\{?2\}?`, f.spoken+" squared"),
			rx(`\\`+f.cmd+`\^\{-1\}`, "inverse "+f.spoken),
		)
	}
	rules = append(rules,
		rx(`\\log_\{([^{}]*)\}`, "log base $1 of"),
		rx(`\\log_([A-Za-z0-9])`, "log base $1 of"),
	)

	// 分式与根式
	for _, name := range []string{"frac", "dfrac", "tfrac", "cfrac"} {
		rules = append(rules, fn(`\\`+name+`\{([^{}]*)\}\{([^{}]*)\}`, func(g []string) string {
			return fraction(g[1], g[2])
		}))
	}
	rules = append(rules,
		fn(`\\frac([0-9])([0-9])`, func(g []string) string { return fraction(g[1], g[2]) }),
		rx(`\\binom\{([^{}]*)\}\{([^{}]*)\}`, "$1 choose $2"),
		fn(`\\sqrt\[([^\]]*)\]\{([^{}]*)\}`, func(g []string) string { return root(g[1], g[2]) }),
		rx(`\\sqrt\{([^{}]*)\}`, "the square root of $1,"),
		rx(`\\sqrt\s*([0-9]+|[A-Za-z])`, "the square root of $1"),
		fn(`(^|[^0-9])([0-9])\s*/\s*([0-9])([^0-9]|$)`, func(g []string) string {
			if spoken, ok := smallFractions[g[2]+"/"+g[3]]; ok {
				return g[1] + spoken + g[4]
			}
			return g[0]
		}),
	)

	// 上下标。导数记号 f^{(n)} 优先于一般指数。
	rules = append(rules,
		fn(`([A-Za-z])\^\{\(([^(){}]+)\)\}`, func(g []string) string {
			return "the " + ordinal(g[2]) + " derivative of " + g[1]
		}),
		fn(`(^|[^A-Za-z\\])e\^\{([^{}]*)\}`, func(g []string) string {
			return g[1] + "e to the " + g[2] + ","
		}),
		rx(`\^\{?\\prime\}?`, " prime"),
		rx(`\^\{?\\ast\}?`, " star"),
		rx(`\^\{?\*\}?`, " star"),
		rx(`\^\{?\\dagger\}?`, " dagger"),
		rx(`\^\{?\\circ\}?`, " degrees"),
		rx(`\^\{?\\perp\}?`, " perp"),
		rx(`\^\{?T\}?`, " transpose"),
		rx(`\^\{?-1\}?`, " inverse"),
		// 一般指数不接受单独的 T 和 *，它们由上面的转置和星号规则读出
		fn(`\^\{([^{}T*][^{}]*|[T*][^{}]+|)\}`, func(g []string) string { return " " + power(g[1]) + " " }),
		fn(`\^([0-9])`, func(g []string) string { return " " + power(g[1]) + " " }),
		fn(`\^([A-SU-Za-z])`, func(g []string) string { return " " + power(g[1]) + " " }),
		fn(`_\{([^{}]*)\}`, func(g []string) string { return " sub " + spaced(g[1]) + " " }),
		rx(`_([A-Za-z0-9])`, " sub $1 "),
		rx(`(^|[^A-Za-z])([A-Za-z])'''`, "$1$2 triple prime"),
		rx(`(^|[^A-Za-z])([A-Za-z])''`, "$1$2 double prime"),
		rx(`(^|[^A-Za-z])([A-Za-z])'`, "$1$2 prime"),
	)

	// 求和、求积、积分、极限与极值
	for _, big := range []struct{ cmd, noun string }{
		{"sum", "sum"}, {"prod", "product"}, {"coprod", "coproduct"},
		{"bigcup", "union"}, {"bigcap", "intersection"}, {"bigoplus", "direct sum"},
		{"bigotimes", "tensor product"},
	} {
		rules = append(rules,
			rx(`\\`+big.cmd+`_\{([^{}]*)\}\^\{([^{}]*)\}`, "the "+big.noun+" from $1 to $2 of"),
			rx(`\\`+big.cmd+`_\{([^{}]*)\}\^([A-Za-z0-9])`, "the "+big.noun+" from $1 to $2 of"),
			rx(`\\`+big.cmd+`_([A-Za-z0-9])\^([A-Za-z0-9])`, "the "+big.noun+" from $1 to $2 of"),
			rx(`\\`+big.cmd+`_\{([^{}]*)\}`, "the "+big.noun+" over $1 of"),
			rx(`\\`+big.cmd+`_([A-Za-z0-9])`, "the "+big.noun+" over $1 of"),
			cmd(big.cmd, "the "+big.noun+" of"),
		)
	}
	rules = append(rules, sym("∑", "the sum of"), sym("∏", "the product of"))

	for _, in := range []struct{ cmd, noun string }{
		{"int", "integral"}, {"iint", "double integral"}, {"iiint", "triple integral"},
		{"oint", "contour integral"},
	} {
		rules = append(rules,
			rx(`\\`+in.cmd+`_\{([^{}]*)\}\^\{([^{}]*)\}`, "the "+in.noun+" from $1 to $2 of"),
			rx(`\\`+in.cmd+`_([A-Za-z0-9])\^([A-Za-z0-9])`, "the "+in.noun+" from $1 to $2 of"),
			rx(`\\`+in.cmd+`_\{([^{}]*)\}\^([A-Za-z0-9])`, "the "+in.noun+" from $1 to $2 of"),
			rx(`\\`+in.cmd+`_\{([^{}]*)\}`, "the "+in.noun+" over $1 of"),
			rx(`\\`+in.cmd+`_([A-Za-z0-9])`, "the "+in.noun+" over $1 of"),
			cmd(in.cmd, "the "+in.noun+" of"),
		)
	}
	rules = append(rules,
		sym("∫", "the integral of"), sym("∮", "the contour integral of"),
		rx(`\\[,;:!]\s*d([A-Za-z])\b`, " d $1"),
		rx(`\\mathrm\{d\}\s*([A-Za-z])`, " d $1"),
		rx(`(\s|\))d([xyztsr])\b`, "$1 d $2"),
	)

	approaches := func(g []string) string {
		sub := strings.ReplaceAll(" "+g[1]+" ", " to ", " approaches ")
		return strings.TrimSpace(sub)
	}
	for _, l := range []struct{ cmd, noun string }{
		{"lim", "limit"}, {"limsup", "limit superior"}, {"liminf", "limit inferior"},
	} {
		noun := l.noun
		rules = append(rules,
			fn(`\\`+l.cmd+`_\{([^{}]*)\}`, func(g []string) string {
				return "the " + noun + " as " + approaches(g) + " of"
			}),
			cmd(l.cmd, "the "+noun+" of"),
		)
	}
	for _, e := range []struct{ cmd, noun string }{
		{"max", "maximum"}, {"min", "minimum"}, {"sup", "supremum"}, {"inf", "infimum"},
		{"argmax", "arg max"}, {"argmin", "arg min"},
	} {
		rules = append(rules,
			rx(`\\`+e.cmd+`_\{([^{}]*)\}`, "the "+e.noun+" over $1 of"),
			rx(`\\`+e.cmd+`_([A-Za-z])`, "the "+e.noun+" over $1 of"),
			cmd(e.cmd, "the "+e.noun+" of"),
		)
	}

	// 字体与修饰
	rules = append(rules,
		fn(`\\mathbb\{([A-Za-z])\}\^\{?([A-Za-z0-9]+)\}?`, func(g []string) string {
			return g[1] + " " + spaced(g[2])
		}),
		fn(`\\mathbb\{([A-Za-z])\}`, func(g []string) string {
			if spoken, ok := blackboard[g[1]]; ok {
				return spoken
			}
			return "blackboard bold " + g[1]
		}),
		sym("ℝ", "the real numbers"), sym("ℂ", "the complex numbers"),
		sym("ℚ", "the rational numbers"), sym("ℤ", "the integers"),
		sym("ℕ", "the natural numbers"),
		rx(`\\mathcal\{([^{}]*)\}`, "script $1"),
		rx(`\\mathfrak\{([^{}]*)\}`, "fraktur $1"),
		rx(`\\mathscr\{([^{}]*)\}`, "script $1"),
		rx(`\\mathbf\{([^{}]*)\}`, "bold $1"),
		rx(`\\boldsymbol\{([^{}]*)\}`, "bold $1"),
		rx(`\\vec\{([^{}]*)\}`, "vector $1"),
		rx(`\\hat\{([^{}]*)\}`, "$1 hat"),
		rx(`\\widehat\{([^{}]*)\}`, "$1 hat"),
		rx(`\\bar\{([^{}]*)\}`, "$1 bar"),
		rx(`\\overline\{([^{}]*)\}`, "$1 bar"),
		rx(`\\tilde\{([^{}]*)\}`, "$1 tilde"),
		rx(`\\widetilde\{([^{}]*)\}`, "$1 tilde"),
		rx(`\\ddot\{([^{}]*)\}`, "$1 double dot"),
		rx(`\\dot\{([^{}]*)\}`, "$1 dot"),
		rx(`\\underline\{([^{}]*)\}`, "$1"),
		rx(`\\(?:text|textrm|mbox|textit|textbf)\{([^{}]*)\}`, "$1"),
		rx(`\\operatorname\{([^{}]*)\}`, "$1"),
		rx(`\\mathrm\{([^{}]*)\}`, "$1"),
		rx(`\\mathit\{([^{}]*)\}`, "$1"),
	)

	// 关系
	rules = append(rules,
		rx(`:=`, " is defined as "),
		cmd("coloneqq", "is defined as"),
		cmd("triangleq", "is defined as"),
		cmd("doteq", "is approximately equal to"),
		rx(`<=`, " is less than or equal to "),
		rx(`>=`, " is greater than or equal to "),
		rx(`!=`, " is not equal to "),
		sym("=", " equals "),
		sym("<", " is less than "),
		sym(">", " is greater than "),
		cmd("neq", "is not equal to"), cmd("ne", "is not equal to"), sym("≠", "is not equal to"),
		cmd("leq", "is less than or equal to"), cmd("le", "is less than or equal to"),
		cmd("leqslant", "is less than or equal to"), sym("≤", "is less than or equal to"),
		cmd("geq", "is greater than or equal to"), cmd("ge", "is greater than or equal to"),
		cmd("geqslant", "is greater than or equal to"), sym("≥", "is greater than or equal to"),
		cmd("lt", "is less than"), cmd("gt", "is greater than"),
		cmd("ll", "is much less than"), cmd("gg", "is much greater than"),
		cmd("approx", "is approximately"), sym("≈", "is approximately"),
		cmd("equiv", "is equivalent to"), sym("≡", "is equivalent to"),
		cmd("sim", "is similar to"), cmd("simeq", "is asymptotically equal to"),
		cmd("cong", "is congruent to"), sym("≅", "is congruent to"),
		cmd("propto", "is proportional to"), sym("∝", "is proportional to"),
		cmd("perp", "is perpendicular to"), sym("⊥", "is perpendicular to"),
		cmd("parallel", "is parallel to"),
	)

	// 运算
	rules = append(rules,
		sym("+", " plus "),
		rx(`(^|[\s=(\[,])-\s*`, "$1 minus "),
		rx(`\b([A-Za-z0-9])-([A-Za-z0-9])\b`, "$1 minus $2"),
		rx(`\)\s*-\s*`, ") minus "),
		cmd("pm", "plus or minus"), sym("±", "plus or minus"),
		cmd("mp", "minus or plus"),
		cmd("times", "times"), sym("×", "times"),
		cmd("cdot", "times"), sym("·", "times"),
		cmd("div", "divided by"), sym("÷", "divided by"),
		rx(`\b([A-Za-z]|[0-9]+)\s*/\s*([A-Za-z]|[0-9]+)\b`, "$1 over $2"),
		cmd("circ", "composed with"), sym("∘", "composed with"),
		cmd("ast", "star"),
		cmd("otimes", "tensor"), sym("⊗", "tensor"),
		cmd("oplus", "direct sum"), sym("⊕", "direct sum"),
		rx(`([0-9A-Za-z)])!([^=]|$)`, "$1 factorial$2"),
		rx(`\\\|([^|]*)\\\|`, "the norm of $1,"),
		rx(`\\lVert(.*?)\\rVert`, "the norm of $1,"),
		rx(`\\lvert(.*?)\\rvert`, "the absolute value of $1,"),
		rx(`\|([^|]{1,40})\|`, "the absolute value of $1,"),
		rx(`\\lfloor(.*?)\\rfloor`, "the floor of $1,"),
		rx(`\\lceil(.*?)\\rceil`, "the ceiling of $1,"),
		rx(`\\langle\s*([^,<>]*?)\s*,\s*([^<>]*?)\s*\\rangle`, "the inner product of $1 and $2,"),
		cmd("langle", "left angle bracket"), cmd("rangle", "right angle bracket"),
		rx(`(^|[^A-Za-z\\])([fghpquvyFGHT])\(([^()]{1,40})\)`, "$1$2 of $3"),
	)

	// 箭头
	rules = append(rules,
		fn(`(^|[^A-Za-z\\])([A-Za-z])\s*:\s*([^\s=:]+)\s*(?:\\to|\\rightarrow|→)`, func(g []string) string {
			return g[1] + g[2] + " from " + g[3] + " to"
		}).prio(10),
		cmd("to", "to"), cmd("rightarrow", "to"), sym("→", "to"),
		cmd("longrightarrow", "to"),
		cmd("mapsto", "maps to"), sym("↦", "maps to"),
		cmd("Rightarrow", "implies"), cmd("implies", "implies"), sym("⇒", "implies"),
		cmd("Longrightarrow", "implies"),
		cmd("Leftarrow", "is implied by"), cmd("impliedby", "is implied by"),
		cmd("Leftrightarrow", "if and only if"), cmd("iff", "if and only if"), sym("⇔", "if and only if"),
		cmd("Longleftrightarrow", "if and only if"),
		cmd("leftarrow", "from"), cmd("gets", "gets"),
		cmd("hookrightarrow", "injects into"), cmd("twoheadrightarrow", "surjects onto"),
		cmd("uparrow", "increases to"), cmd("downarrow", "decreases to"),
		cmd("rightharpoonup", "converges weakly to"),
	)

	// 逻辑与集合的基础符号
	rules = append(rules,
		cmd("forall", "for all"), sym("∀", "for all"),
		cmd("exists", "there exists"), sym("∃", "there exists"),
		cmd("nexists", "there does not exist"), sym("∄", "there does not exist"),
		cmd("neg", "not"), cmd("lnot", "not"), sym("¬", "not"),
		cmd("land", "and"), cmd("wedge", "and"), sym("∧", "and"),
		cmd("lor", "or"), cmd("vee", "or"), sym("∨", "or"),
		rx(`\\not\s*\\in`, "is not in"),
		cmd("notin", "is not in"), sym("∉", "is not in"),
		cmd("in", "in"), sym("∈", "in"),
		cmd("ni", "contains"), sym("∋", "contains"),
		cmd("subseteq", "is a subset of"), sym("⊆", "is a subset of"),
		cmd("subsetneq", "is a proper subset of"), sym("⊊", "is a proper subset of"),
		cmd("subset", "is a subset of"), sym("⊂", "is a subset of"),
		cmd("supseteq", "is a superset of"), sym("⊇", "is a superset of"),
		cmd("supset", "is a superset of"), sym("⊃", "is a superset of"),
		cmd("cup", "union"), sym("∪", "union"),
		cmd("cap", "intersect"), sym("∩", "intersect"),
		cmd("setminus", "minus"), sym("∖", "minus"),
		cmd("emptyset", "the empty set"), cmd("varnothing", "the empty set"), sym("∅", "the empty set"),
		rx(`\\\{\s*(.+?)\s*(?:\\mid|\||:)\s*(.+?)\s*\\\}`, "the set of all $1 such that $2,"),
		rx(`\\\{\s*([^{}]*?)\s*\\\}`, "the set containing $1,"),
		cmd("mid", "such that"),
	)

	// 其它常量与符号
	rules = append(rules,
		cmd("infty", "infinity"), sym("∞", "infinity"),
		cmd("partial", "partial"), sym("∂", "partial"),
		cmd("nabla", "nabla"), sym("∇", "nabla"),
		cmd("ell", "ell"), cmd("hbar", "h bar"), cmd("imath", "i"), cmd("jmath", "j"),
		cmd("Re", "the real part of"), cmd("Im", "the imaginary part of"),
		rx(`\\aleph_\{?0\}?`, "aleph null"), cmd("aleph", "aleph"),
		cmd("angle", "angle"), cmd("triangle", "triangle"), cmd("deg", "degree"),
		cmd("prime", "prime"), cmd("dagger", "dagger"),
		rx(`\\%|%`, " percent"),
		cmd("ldots", "and so on"), cmd("dots", "and so on"), cmd("cdots", "and so on"),
		cmd("vdots", "and so on"), cmd("ddots", "and so on"), sym("…", "and so on"),
		cmd("qed", "end of proof"), sym("∎", "end of proof"), sym("□", "end of proof"),
		cmd("checkmark", "check"),
	)

	// 环境与排版
	rules = append(rules,
		fn(`(?s)\\begin\{[pbvBV]?matrix\}(.*?)\\end\{[pbvBV]?matrix\}`, func(g []string) string { return matrix(g[1]) }).raw(),
		fn(`(?s)\\begin\{cases\}(.*?)\\end\{cases\}`, func(g []string) string { return cases(g[1]) }).raw(),
		fn(`\\begin\{(theorem|lemma|proposition|corollary|definition|example|remark|proof|notation)\*?\}`, func(g []string) string {
			return strings.ToUpper(g[1][:1]) + g[1][1:] + "."
		}),
		rx(`\\end\{proof\}`, "end of proof."),
		rx(`\\(?:begin|end)\{[A-Za-z*]+\}`, " "),
		rx(`\\(?:label|tag|eqref|ref|cite)\*?\{\s*\}`, " "),
		rx(`\\label\{[^{}]*\}`, " "),
		rx(`\\tag\{([^{}]*)\}`, " "),
		rx(`\\nonumber|\\notag`, " "),
		rx(`\\(?:quad|qquad)`, " "),
		rx(`\\[,;:! ]`, " "),
		rx(`~`, " "),
		rx(`\\\\`, ", "),
		rx(`&`, " "),
	)

	return rules
}
