package mathcodec

// identifiers are macros set as <mi>.
var identifiers = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ϵ",
	"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "omicron": "ο",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ", "upsilon": "υ",
	"phi": "ϕ", "chi": "χ", "psi": "ψ", "omega": "ω",

	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ", "Epsilon": "Ε",
	"Zeta": "Ζ", "Eta": "Η", "Theta": "Θ", "Iota": "Ι", "Kappa": "Κ",
	"Lambda": "Λ", "Mu": "Μ", "Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο",
	"Pi": "Π", "Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ",
	"Phi": "Φ", "Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",

	"hbar": "ℏ", "nabla": "∇",
}

// operators are macros set as <mo>.
var operators = map[string]string{
	// binary
	"amalg": "⨿", "ast": "∗", "bigcirc": "◯", "bigtriangledown": "▽",
	"bigtriangleup": "△", "bullet": "∙", "cdot": "⋅", "circ": "∘",
	"cap": "∩", "cup": "∪", "dagger": "†", "ddagger": "‡", "diamond": "⋄",
	"div": "÷", "lhd": "⊲", "mp": "∓", "odot": "⊙", "ominus": "⊖",
	"oplus": "⊕", "oslash": "⊘", "otimes": "⊗", "pm": "±", "rhd": "⊳",
	"setminus": "∖", "sqcap": "⊓", "sqcup": "⊔", "star": "⋆", "times": "×",
	"triangleleft": "◃", "triangleright": "▹", "uplus": "⊎", "unlhd": "⊴",
	"unrhd": "⊵", "vee": "∨", "wedge": "∧", "wr": "≀",

	// relations
	"approx": "≈", "asymp": "≍", "bowtie": "⋈", "cong": "≅", "dashv": "⊣",
	"doteq": "≐", "doteqdot": "≑", "dotplus": "∔", "dots": "…", "equiv": "≡",
	"frown": "⌢", "geq": "≥", "gg": "≫", "in": "∈", "leq": "≤", "ll": "≪",
	"mid": "∣", "models": "⊨", "neq": "≠", "ni": "∋", "parallel": "∥",
	"perp": "⊥", "prec": "≺", "preceq": "⪯", "propto": "∝", "sim": "∼",
	"simeq": "≃", "smile": "⌣", "sqsubset": "⊏", "sqsubseteq": "⊑",
	"sqsupset": "⊐", "sqsupseteq": "⊒", "subset": "⊂", "subseteq": "⊆",
	"succ": "≻", "succeq": "⪰", "supset": "⊃", "supseteq": "⊇",
	"vdash": "⊢", "Join": "⋈",

	// arrows
	"downarrow": "↓", "hookleftarrow": "↩", "hookrightarrow": "↪",
	"leadsto": "⇝", "leftarrow": "←", "leftharpoondown": "↽",
	"leftharpoonup": "↼", "leftrightarrow": "↔", "longleftarrow": "⟵",
	"longleftrightarrow": "⟷", "longmapsto": "⟼", "longrightarrow": "⟶",
	"rightarrow": "→", "mapsto": "↦", "nearrow": "↗", "nwarrow": "↖",
	"rightharpoondown": "⇁", "rightharpoonup": "⇀", "rightleftharpoons": "⇌",
	"searrow": "↘", "swarrow": "↙", "uparrow": "↑", "updownarrow": "↕",
	"Downarrow": "⇓", "Leftarrow": "⇐", "Leftrightarrow": "⇔",
	"Longleftarrow": "⟸", "Longleftrightarrow": "⟺", "Longrightarrow": "⟹",
	"Rightarrow": "⇒", "Uparrow": "⇑", "Updownarrow": "⇕",

	// dots
	"ldotp": ".", "cdotp": "⋅", "cdots": "⋯", "ddots": "⋱", "ldots": "…",
	"vdots": "⋮",

	// large operators
	"bigcap": "⋂", "bigcup": "⋃", "bigodot": "⨀", "bigoplus": "⨁",
	"bigotimes": "⨂", "bigsqcup": "⨆", "biguplus": "⨄", "bigvee": "⋁",
	"bigwedge": "⋀", "coprod": "∐", "prod": "∏", "sum": "∑", "int": "∫",
	"oint": "∮",

	// delimiters
	"backslash": "\\", "vert": "|", "Vert": "‖", "langle": "⟨", "rangle": "⟩",
	"lceil": "⌈", "rceil": "⌉", "lfloor": "⌊", "rfloor": "⌋",
}

var functionNames = map[string]bool{
	"lim": true, "liminf": true, "limsup": true, "max": true, "min": true,
	"sup": true, "inf": true, "arccos": true, "arcsin": true, "arctan": true,
	"arg": true, "cos": true, "cosh": true, "cot": true, "coth": true,
	"csc": true, "deg": true, "det": true, "dim": true, "gcd": true,
	"hom": true, "ker": true, "lg": true, "ln": true, "log": true,
	"sec": true, "sin": true, "sinh": true, "tan": true, "tanh": true,
	"Pr": true,
}

// fontVariants are the one-argument font commands.
var fontVariants = map[string]string{
	"mathbf": "bold", "textbf": "bold",
	"mathit": "italic", "textit": "italic",
	"mathsf": "sans-serif", "textsf": "sans-serif",
	"mathtt": "monospace", "texttt": "monospace",
	"mathcal": "script", "textcal": "script",
	"mathscr": "script", "textscr": "script",
	"mathbb": "double-struck", "textbb": "double-struck",
	"mathfrak": "fraktur", "textfrak": "fraktur",
	"mathdefault": "normal", "textdefault": "normal",
	"mathregular": "normal", "textregular": "normal",
}

// fontSwitches are argument-less font state macros; they render nothing.
var fontSwitches = map[string]bool{
	"rm": true, "cal": true, "it": true, "tt": true, "sf": true, "bf": true,
	"default": true, "bb": true, "frak": true, "scr": true, "regular": true,
}
