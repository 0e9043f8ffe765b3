package vocab

func probabilityRules() []Rule {
	return inDomain(Probability,
		rx(`\\mathbb\{E\}\s*\[([^\[\]]*)\]`, "the expected value of $1,"),
		rx(`\\mathbb\{E\}\s*\[([^\[\]|]*)\s*\|\s*([^\[\]]*)\]`, "the expected value of $1 given $2,"),
		rx(`\\mathbb\{E\}`, "the expected value of").prio(5),
		rx(`\\mathbb\{P\}\s*\(([^()|]*)\s*\|\s*([^()]*)\)`, "the probability of $1 given $2,"),
		rx(`\\mathbb\{P\}\s*\(([^()]*)\)`, "the probability of $1,"),
		rx(`\\mathbb\{P\}`, "the probability").prio(5),
		rx(`\bP\(([^()|]*)\s*\|\s*([^()]*)\)`, "the probability of $1 given $2,"),
		rx(`\bP\(([^()]*)\)`, "the probability of $1,"),
		rx(`\\Pr\s*\(([^()]*)\)`, "the probability of $1,"),
		rx(`\\operatorname\{Var\}\s*\(([^()]*)\)`, "the variance of $1,"),
		rx(`\\mathrm\{Var\}\s*\(([^()]*)\)`, "the variance of $1,"),
		rx(`\\operatorname\{Cov\}\s*\(([^(),]*),\s*([^()]*)\)`, "the covariance of $1 and $2,"),
		rx(`\\mathrm\{Cov\}\s*\(([^(),]*),\s*([^()]*)\)`, "the covariance of $1 and $2,"),
		rx(`\bVar\(([^()]*)\)`, "the variance of $1,"),
		rx(`\bCov\(([^(),]*),\s*([^()]*)\)`, "the covariance of $1 and $2,"),
		rx(`\\sim\s*\\mathcal\{N\}\s*\(([^(),]*),\s*([^()]*)\)`, "is normally distributed with mean $1 and variance $2"),
		rx(`\\mathcal\{N\}\s*\(([^(),]*),\s*([^()]*)\)`, "the normal distribution with mean $1 and variance $2"),
		rx(`\\sim\s*\\operatorname\{Bin\}\s*\(([^(),]*),\s*([^()]*)\)`, "is binomially distributed with parameters $1 and $2"),
		rx(`\\sim\s*\\operatorname\{Poisson\}\s*\(([^()]*)\)`, "is Poisson distributed with rate $1"),
		rx(`\\sim\s*\\operatorname\{Unif\}\s*\(([^(),]*),\s*([^()]*)\)`, "is uniformly distributed on $1 to $2"),
		rx(`\\sim\s*\\operatorname\{Exp\}\s*\(([^()]*)\)`, "is exponentially distributed with rate $1"),
		cmd("sim", "is distributed as").prio(5),
		rx(`\\xrightarrow\{d\}`, "converges in distribution to"),
		rx(`\\xrightarrow\{p\}`, "converges in probability to"),
		rx(`\\xrightarrow\{a\.s\.\}`, "converges almost surely to"),
		rx(`\\perp\\!\\!\\!\\perp`, "is independent of"),
		rx(`\\indep`, "is independent of"),
		rx(`\\bar\{X\}_\{?n\}?`, "the sample mean X bar n"),
		rx(`\\hat\{\\theta\}`, "the estimator theta hat"),
		rx(`\\sigma\^\{?2\}?`, "the variance sigma squared").prio(-1),
		rx(`\bF_\{?X\}?\(([^()]*)\)`, "the distribution function of X at $1"),
		rx(`\bf_\{?X\}?\(([^()]*)\)`, "the density of X at $1"),
		rx(`\\Omega`, "the sample space").prio(5),
		rx(`\\mathcal\{F\}`, "the sigma algebra F"),
	)
}
