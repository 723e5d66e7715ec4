package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// knob maps a command-line flag onto one field of the universal bundle.
type knob struct {
	flag  string
	key   string
	usage string
	ptr   func(*ftypes.ParametersDTO) **int
}

var knobs = []knob{
	{"torsion-path-length", "torsionPathLength", "torsion path length", func(p *ftypes.ParametersDTO) **int { return &p.TorsionPathLength }},
	{"min-path", "minPath", "minimum path length", func(p *ftypes.ParametersDTO) **int { return &p.MinPath }},
	{"max-path", "maxPath", "maximum path length", func(p *ftypes.ParametersDTO) **int { return &p.MaxPath }},
	{"atom-pair-min-path", "atomPairMinPath", "atom-pair minimum distance", func(p *ftypes.ParametersDTO) **int { return &p.AtomPairMinPath }},
	{"atom-pair-max-path", "atomPairMaxPath", "atom-pair maximum distance", func(p *ftypes.ParametersDTO) **int { return &p.AtomPairMaxPath }},
	{"num-bits", "numBits", "fingerprint length in bits", func(p *ftypes.ParametersDTO) **int { return &p.NumBits }},
	{"radius", "radius", "Morgan radius", func(p *ftypes.ParametersDTO) **int { return &p.Radius }},
	{"layer-flags", "layerFlags", "Layered layer mask", func(p *ftypes.ParametersDTO) **int { return &p.LayerFlags }},
	{"avalon-query-flag", "avalonQueryFlag", "Avalon query flag (0 or 1)", func(p *ftypes.ParametersDTO) **int { return &p.AvalonQueryFlag }},
	{"avalon-bit-flags", "avalonBitFlags", "Avalon feature-class mask", func(p *ftypes.ParametersDTO) **int { return &p.AvalonBitFlags }},
}

// settingsFlags collects a descriptor from flags.  A knob flag that is not
// given on the command line stays unavailable.
type settingsFlags struct {
	family string
	from   string
	values map[string]*int
}

func addSettingsFlags(cmd *cobra.Command) *settingsFlags {
	sf := &settingsFlags{values: make(map[string]*int, len(knobs))}
	fs := cmd.Flags()
	fs.StringVarP(&sf.family, "type", "t", "", "fingerprint type, e.g. Morgan, AtomPair, MACCS (empty selects the configured default)")
	fs.StringVarP(&sf.from, "settings", "s", "", "read the descriptor from a YAML/JSON file, '-' for stdin; knob flags override it")
	for _, k := range knobs {
		v := new(int)
		sf.values[k.flag] = v
		fs.IntVar(v, k.flag, 0, k.usage+" (unset unless given)")
	}
	return sf
}

// dto builds the wire descriptor.  Knob flags override values read from
// --settings.
func (sf *settingsFlags) dto(cmd *cobra.Command) (ftypes.SettingsDTO, error) {
	var dto ftypes.SettingsDTO
	if sf.from != "" {
		d, err := readSettings(cmd.InOrStdin(), sf.from)
		if err != nil {
			return dto, err
		}
		dto = d
	}
	if sf.family != "" {
		dto.Type = sf.family
	}
	for _, k := range knobs {
		if cmd.Flags().Changed(k.flag) {
			v := *sf.values[k.flag]
			*k.ptr(&dto.ParametersDTO) = &v
		}
	}
	return dto, nil
}

// parseSettings decodes a YAML or JSON descriptor document.
func parseSettings(data []byte) (ftypes.SettingsDTO, error) {
	var dto ftypes.SettingsDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return dto, fmt.Errorf("invalid settings document: %w", err)
	}
	if strings.TrimSpace(dto.Type) == "" {
		return dto, fmt.Errorf("settings document has no type")
	}
	return dto, nil
}

// readSettings loads a descriptor from path, or from stdin for "-".  A value
// starting with '{' is taken as an inline document.
func readSettings(stdin io.Reader, path string) (ftypes.SettingsDTO, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case path == "-":
		data, err = io.ReadAll(stdin)
	case strings.HasPrefix(strings.TrimSpace(path), "{"):
		data = []byte(path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return ftypes.SettingsDTO{}, fmt.Errorf("read settings %q: %w", path, err)
	}
	return parseSettings(data)
}

// readSMILES returns the non-blank, non-comment lines of r.  Only the first
// whitespace-separated token of each line is kept so that "SMILES name"
// files work unchanged.
func readSMILES(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)[0])
	}
	return out, sc.Err()
}

//Personal.AI order the ending
