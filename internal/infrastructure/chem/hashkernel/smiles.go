package hashkernel

import (
	"fmt"
	"strings"

	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
)

type bondOrder uint8

const (
	bondSingle   bondOrder = 1
	bondDouble   bondOrder = 2
	bondTriple   bondOrder = 3
	bondAromatic bondOrder = 4
)

// maxIsotopeDigits bounds the mass number of a bracket atom.
const maxIsotopeDigits = 3

// defaultValence lists the organic-subset elements and their lowest normal
// valence, used to derive implicit hydrogens.
var defaultValence = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
}

// bracketElements are the symbols accepted inside brackets besides the
// organic subset.
var bracketElements = map[string]bool{
	"H": true, "He": true, "Li": true, "Be": true, "Na": true, "Mg": true, "Al": true,
	"Si": true, "K": true, "Ca": true, "Ti": true, "V": true, "Cr": true, "Mn": true,
	"Fe": true, "Co": true, "Ni": true, "Cu": true, "Zn": true, "Ga": true, "Ge": true,
	"As": true, "Se": true, "Rb": true, "Sr": true, "Zr": true, "Mo": true, "Ru": true,
	"Rh": true, "Pd": true, "Ag": true, "Cd": true, "In": true, "Sn": true, "Sb": true,
	"Te": true, "Cs": true, "Ba": true, "La": true, "Ce": true, "Eu": true, "Gd": true,
	"Ir": true, "Pt": true, "Au": true, "Hg": true, "Tl": true, "Pb": true, "Bi": true,
	"Ne": true, "Ar": true, "Kr": true, "Xe": true,
}

// aromaticSymbols maps lowercase aromatic tokens to element symbols.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S", "se": "Se", "as": "As",
}

type ringOpen struct {
	atom  int
	order bondOrder
}

type smilesParser struct {
	src     string
	pos     int
	mol     *Molecule
	prev    int
	pending bondOrder
	branch  []int
	rings   map[int]ringOpen
}

// parseSMILES builds the molecular graph described by a SMILES string.
// Stereo markers and atom classes are accepted and ignored.
func parseSMILES(smiles string) (*Molecule, error) {
	src := strings.TrimSpace(smiles)
	if src == "" {
		return nil, invalidSMILES(smiles, "empty SMILES")
	}
	p := &smilesParser{
		src:   src,
		mol:   &Molecule{smiles: src},
		prev:  -1,
		rings: make(map[int]ringOpen),
	}
	if err := p.parse(); err != nil {
		return nil, invalidSMILES(smiles, err.Error())
	}
	p.mol.finalize()
	return p.mol, nil
}

func invalidSMILES(smiles, reason string) *errors.AppError {
	return errors.New(errors.ErrCodeMoleculeParse, reason).WithDetail("smiles=" + smiles)
}

func (p *smilesParser) parse() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		var err error
		switch {
		case c == '(':
			if p.prev < 0 {
				return fmt.Errorf("branch at %d has no preceding atom", p.pos)
			}
			p.branch = append(p.branch, p.prev)
			p.pos++
		case c == ')':
			if len(p.branch) == 0 {
				return fmt.Errorf("unbalanced ')' at %d", p.pos)
			}
			if p.pending != 0 {
				return fmt.Errorf("dangling bond before ')' at %d", p.pos)
			}
			p.prev = p.branch[len(p.branch)-1]
			p.branch = p.branch[:len(p.branch)-1]
			p.pos++
		case c == '.':
			if p.pending != 0 {
				return fmt.Errorf("dangling bond before '.' at %d", p.pos)
			}
			p.prev = -1
			p.pos++
		case c == '-' || c == '/' || c == '\\':
			err = p.setPending(bondSingle)
		case c == '=':
			err = p.setPending(bondDouble)
		case c == '#':
			err = p.setPending(bondTriple)
		case c == ':':
			err = p.setPending(bondAromatic)
		case c >= '0' && c <= '9':
			err = p.ringClosure(int(c - '0'))
			p.pos++
		case c == '%':
			if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
				return fmt.Errorf("malformed ring number at %d", p.pos)
			}
			err = p.ringClosure(int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0'))
			p.pos += 3
		case c == '[':
			err = p.bracketAtom()
		default:
			err = p.organicAtom()
		}
		if err != nil {
			return err
		}
	}
	if len(p.branch) > 0 {
		return fmt.Errorf("unclosed branch")
	}
	if len(p.rings) > 0 {
		return fmt.Errorf("unclosed ring")
	}
	if p.pending != 0 {
		return fmt.Errorf("dangling bond at end of input")
	}
	if len(p.mol.atoms) == 0 {
		return fmt.Errorf("no atoms")
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *smilesParser) setPending(order bondOrder) error {
	if p.pending != 0 {
		return fmt.Errorf("consecutive bond symbols at %d", p.pos)
	}
	if p.prev < 0 {
		return fmt.Errorf("bond at %d has no preceding atom", p.pos)
	}
	p.pending = order
	p.pos++
	return nil
}

func (p *smilesParser) ringClosure(n int) error {
	if p.prev < 0 {
		return fmt.Errorf("ring closure %d has no preceding atom", n)
	}
	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = ringOpen{atom: p.prev, order: p.pending}
		p.pending = 0
		return nil
	}
	delete(p.rings, n)
	order := p.pending
	if order == 0 {
		order = open.order
	}
	if order == 0 {
		order = p.mol.implicitOrder(open.atom, p.prev)
	}
	p.pending = 0
	return p.mol.addBond(open.atom, p.prev, order)
}

func (p *smilesParser) addAtom(a atom) error {
	idx := len(p.mol.atoms)
	p.mol.atoms = append(p.mol.atoms, a)
	p.mol.adj = append(p.mol.adj, nil)
	if p.prev >= 0 {
		order := p.pending
		if order == 0 {
			order = p.mol.implicitOrder(p.prev, idx)
		}
		if err := p.mol.addBond(p.prev, idx, order); err != nil {
			return err
		}
	}
	p.pending = 0
	p.prev = idx
	return nil
}

func (p *smilesParser) organicAtom() error {
	rest := p.src[p.pos:]
	if strings.HasPrefix(rest, "Cl") || strings.HasPrefix(rest, "Br") {
		p.pos += 2
		return p.addAtom(atom{symbol: rest[:2], hydrogens: -1})
	}
	c := rest[0]
	switch {
	case c == '*':
		p.pos++
		return p.addAtom(atom{symbol: "*", hydrogens: -1})
	case strings.IndexByte("BCNOPSFI", c) >= 0:
		p.pos++
		return p.addAtom(atom{symbol: string(c), hydrogens: -1})
	case strings.IndexByte("bcnops", c) >= 0:
		p.pos++
		return p.addAtom(atom{symbol: aromaticSymbols[string(c)], aromatic: true, hydrogens: -1})
	}
	return fmt.Errorf("unexpected character %q at %d", c, p.pos)
}

func (p *smilesParser) bracketAtom() error {
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return fmt.Errorf("unclosed bracket atom at %d", p.pos)
	}
	body := p.src[p.pos+1 : p.pos+end]
	start := p.pos
	p.pos += end + 1

	a := atom{bracket: true}
	i := 0
	for i < len(body) && isDigit(body[i]) {
		if i == maxIsotopeDigits {
			return fmt.Errorf("isotope in %q at %d has more than %d digits", body, start, maxIsotopeDigits)
		}
		a.isotope = a.isotope*10 + int(body[i]-'0')
		i++
	}

	switch {
	case i < len(body) && body[i] == '*':
		a.symbol = "*"
		i++
	case i+1 < len(body) && (body[i:i+2] == "se" || body[i:i+2] == "as"):
		a.symbol, a.aromatic = aromaticSymbols[body[i:i+2]], true
		i += 2
	case i < len(body) && aromaticSymbols[body[i:i+1]] != "":
		a.symbol, a.aromatic = aromaticSymbols[body[i:i+1]], true
		i++
	case i < len(body) && body[i] >= 'A' && body[i] <= 'Z':
		sym := body[i : i+1]
		if i+1 < len(body) && body[i+1] >= 'a' && body[i+1] <= 'z' && isElement(body[i:i+2]) {
			sym = body[i : i+2]
		}
		if !isElement(sym) {
			return fmt.Errorf("unknown element %q at %d", sym, start)
		}
		a.symbol = sym
		i += len(sym)
	default:
		return fmt.Errorf("bracket atom without element at %d", start)
	}

	for i < len(body) && body[i] == '@' {
		i++
	}
	if i < len(body) && body[i] == 'H' {
		i++
		a.hydrogens = 1
		if i < len(body) && isDigit(body[i]) {
			a.hydrogens = int(body[i] - '0')
			i++
		}
	}
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		ch := body[i]
		i++
		magnitude := 1
		if i < len(body) && isDigit(body[i]) {
			magnitude = int(body[i] - '0')
			i++
		} else {
			for i < len(body) && body[i] == ch {
				magnitude++
				i++
			}
		}
		a.charge = sign * magnitude
	}
	if i < len(body) && body[i] == ':' {
		i++
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}
	if i != len(body) {
		return fmt.Errorf("malformed bracket atom %q at %d", body, start)
	}
	return p.addAtom(a)
}

func isElement(sym string) bool {
	_, organic := defaultValence[sym]
	return organic || bracketElements[sym]
}

//Personal.AI order the ending
