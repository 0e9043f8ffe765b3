package vocab

func algebraRules() []Rule {
	return inDomain(Algebra,
		cmd("cong", "is isomorphic to").prio(10),
		sym("≅", "is isomorphic to").prio(10),
		cmd("trianglelefteq", "is a normal subgroup of"),
		cmd("triangleleft", "is a proper normal subgroup of"),
		cmd("unlhd", "is a normal subgroup of"),
		sym("⊴", "is a normal subgroup of"),
		cmd("leq", "is a subgroup of").prio(-1),
		rx(`\[([A-Za-z]):([A-Za-z])\]`, "the index of $2 in $1"),
		rx(`\|([A-Z])\|`, "the order of $1").prio(5),
		rx(`\\langle\s*([^<>,]*)\s*\\rangle`, "the group generated by $1"),
		rx(`([A-Z])/([A-Z])`, "$1 mod $2"),
		rx(`\\operatorname\{Aut\}\s*\(([^()]*)\)`, "the automorphism group of $1"),
		rx(`\\operatorname\{Hom\}\s*\(([^(),]*),\s*([^()]*)\)`, "the homomorphisms from $1 to $2"),
		rx(`\\operatorname\{Gal\}\s*\(([^()]*)\)`, "the Galois group of $1"),
		rx(`\\operatorname\{char\}`, "the characteristic of"),
		rx(`\\ker\s*\(([^()]*)\)`, "the kernel of $1"),
		rx(`\\operatorname\{im\}`, "the image of"),
		rx(`S_\{?([0-9n])\}?`, "the symmetric group on $1 letters"),
		rx(`A_\{?([0-9n])\}?`, "the alternating group on $1 letters"),
		rx(`D_\{?([0-9n])\}?`, "the dihedral group of order 2 $1"),
		rx(`\\mathbb\{Z\}/([0-9n])\\mathbb\{Z\}`, "Z mod $1 Z"),
		rx(`\\mathbb\{Z\}_\{?([0-9n])\}?`, "the integers mod $1"),
		rx(`GL_\{?([0-9n])\}?\s*\(([^()]*)\)`, "the general linear group of degree $1 over $2"),
		rx(`SL_\{?([0-9n])\}?\s*\(([^()]*)\)`, "the special linear group of degree $1 over $2"),
		rx(`\[([A-Za-z]),\s*([A-Za-z])\]`, "the commutator of $1 and $2"),
		rx(`([A-Za-z])\[x\]`, "the polynomial ring over $1 in x"),
	)
}
