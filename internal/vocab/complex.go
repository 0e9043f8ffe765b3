package vocab

func complexRules() []Rule {
	return inDomain(Complex,
		rx(`\\overline\{z\}`, "z conjugate").prio(10),
		rx(`\\bar\{z\}`, "z conjugate").prio(10),
		rx(`\\bar\{w\}`, "w conjugate").prio(10),
		rx(`\|z\|`, "the modulus of z").prio(10),
		rx(`\\operatorname\{Res\}_\{([^{}]*)\}`, "the residue at $1 of"),
		rx(`\\operatorname\{Res\}\s*\(([^(),]*),\s*([^()]*)\)`, "the residue of $1 at $2"),
		rx(`\\operatorname\{Log\}`, "the principal logarithm of"),
		rx(`\\operatorname\{Arg\}`, "the principal argument of"),
		cmd("arg", "the argument of"),
		rx(`\\Re\s*\(([^()]*)\)`, "the real part of $1"),
		rx(`\\Im\s*\(([^()]*)\)`, "the imaginary part of $1"),
		rx(`\\operatorname\{Re\}`, "the real part of"),
		rx(`\\operatorname\{Im\}`, "the imaginary part of"),
		rx(`\\oint_\{\|z\|\s*=\s*([^{}]*)\}`, "the contour integral over the circle of radius $1 of"),
		rx(`\\oint_\{?([A-Za-z])\}?`, "the contour integral over $1 of"),
		rx(`e\^\{i\\theta\}`, "e to the i theta,"),
		rx(`e\^\{i\\pi\}`, "e to the i pi,"),
		rx(`\bD\(([^(),]*),\s*([^()]*)\)`, "the disk centered at $1 of radius $2"),
		rx(`\\mathbb\{D\}`, "the unit disk"),
		rx(`\\hat\{\\mathbb\{C\}\}`, "the Riemann sphere"),
		rx(`\\widehat\{\\mathbb\{C\}\}`, "the Riemann sphere"),
	)
}
