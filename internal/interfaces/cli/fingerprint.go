package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

type familiesView []ftypes.FamilyInfo

func (v familiesView) TableHeaders() []string {
	return []string{"Name", "Type", "Parameters", "Serialized"}
}

func (v familiesView) TableRows() [][]string {
	rows := make([][]string, len(v))
	for i, f := range v {
		params := strings.Join(f.Parameters, ",")
		if params == "" {
			params = "-"
		}
		rows[i] = []string{f.Name, f.DisplayName, params, strconv.FormatBool(f.Serialized)}
	}
	return rows
}

// settingsView lists the type and every available knob of a descriptor.
type settingsView ftypes.SettingsDTO

func (v settingsView) TableHeaders() []string { return []string{"Parameter", "Value"} }

func (v settingsView) TableRows() [][]string {
	rows := [][]string{{"type", v.Type}}
	params := v.ParametersDTO
	for _, k := range knobs {
		if p := *k.ptr(&params); p != nil {
			rows = append(rows, []string{k.key, strconv.Itoa(*p)})
		}
	}
	return rows
}

type validationView ftypes.ValidationResponse

func (v validationView) TableHeaders() []string { return []string{"Valid", "Code", "Message"} }

func (v validationView) TableRows() [][]string {
	return [][]string{{strconv.FormatBool(v.Valid), v.Code, v.Message}}
}

type compatibilityView struct {
	ftypes.CompatibilityResponse
	Differs []string `json:"differs,omitempty"`
}

func (v compatibilityView) TableHeaders() []string { return []string{"Compatible", "Differs"} }

func (v compatibilityView) TableRows() [][]string {
	return [][]string{{strconv.FormatBool(v.Compatible), strings.Join(v.Differs, ",")}}
}

// calcView prints one row per molecule.  Bits are listed only in verbose
// mode.
type calcView struct {
	resp    *ftypes.CalculateResponse
	verbose bool
}

func (v calcView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.resp)
}

func (v calcView) TableHeaders() []string {
	h := []string{"SMILES", "Bits", "On", "Error"}
	if v.verbose {
		h = append(h, "On Bits")
	}
	return h
}

func (v calcView) TableRows() [][]string {
	rows := make([][]string, len(v.resp.Results))
	for i, r := range v.resp.Results {
		row := []string{r.SMILES, strconv.Itoa(r.NumBits), strconv.Itoa(r.Count), r.Error}
		if r.Error != "" {
			row[1], row[2] = "-", "-"
		}
		if v.verbose {
			bits := make([]string, len(r.OnBits))
			for j, b := range r.OnBits {
				bits[j] = strconv.Itoa(b)
			}
			row = append(row, strings.Join(bits, " "))
		}
		rows[i] = row
	}
	return rows
}

type similarityView struct {
	Query    string  `json:"query"`
	Target   string  `json:"target"`
	Tanimoto float64 `json:"tanimoto"`
}

func (v similarityView) TableHeaders() []string { return []string{"Query", "Target", "Tanimoto"} }

func (v similarityView) TableRows() [][]string {
	return [][]string{{v.Query, v.Target, strconv.FormatFloat(v.Tanimoto, 'f', 4, 64)}}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func newFamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the supported fingerprint families and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return PrintResult(cmd, familiesView(cliCtx.Service.Families(cmd.Context())))
		},
	}
}

func newSpecCmd() *cobra.Command {
	var sf *settingsFlags
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Build a settings descriptor for a family from the universal parameters",
		Long: "spec keeps only the parameters the chosen family honours; every other\n" +
			"knob given on the command line is dropped.",
		Example: "  fpctl spec --type Morgan --num-bits 2048 --radius 2 --min-path 1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := sf.dto(cmd)
			if err != nil {
				return err
			}
			if dto.Type == "" {
				return errors.InvalidParam("--type is required")
			}
			out, err := cliCtx.Service.Specification(cmd.Context(), &ftypes.SpecificationRequest{
				Type:       dto.Type,
				Parameters: dto.ParametersDTO,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, settingsView(*out))
		},
	}
	sf = addSettingsFlags(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	var sf *settingsFlags
	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Check a settings descriptor against its family's rules",
		Example: "  fpctl validate --type RDKit --min-path 1 --max-path 7 --num-bits 2048",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := sf.dto(cmd)
			if err != nil {
				return err
			}
			resp, err := cliCtx.Service.Validate(cmd.Context(), dto)
			if err != nil {
				return err
			}
			if err := PrintResult(cmd, validationView(*resp)); err != nil {
				return err
			}
			if !resp.Valid {
				return fmt.Errorf("settings are invalid")
			}
			return nil
		},
	}
	sf = addSettingsFlags(cmd)
	return cmd
}

func newCompatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compat A B",
		Short: "Check whether two descriptors produce interchangeable fingerprints",
		Long: "Each argument is a YAML/JSON descriptor file, an inline JSON document,\n" +
			"or '-' for stdin (at most once).",
		Example: `  fpctl compat indexed.yaml '{"type":"Morgan","num_bits":2048,"radius":2}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if args[0] == "-" && args[1] == "-" {
				return errors.InvalidParam("stdin can supply only one descriptor")
			}
			a, err := readSettings(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			b, err := readSettings(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			resp, err := cliCtx.Service.CheckCompatibility(cmd.Context(), &ftypes.CompatibilityRequest{A: &a, B: &b})
			if err != nil {
				return err
			}
			view := compatibilityView{CompatibilityResponse: *resp}
			if !resp.Compatible {
				view.Differs = differingKeys(normalize(cmd, cliCtx, a), normalize(cmd, cliCtx, b))
			}
			return PrintResult(cmd, view)
		},
	}
	return cmd
}

// normalize drops the knobs dto's family ignores.
func normalize(cmd *cobra.Command, cliCtx *CLIContext, dto ftypes.SettingsDTO) ftypes.SettingsDTO {
	out, err := cliCtx.Service.Specification(cmd.Context(), &ftypes.SpecificationRequest{Type: dto.Type, Parameters: dto.ParametersDTO})
	if err != nil {
		return dto
	}
	return *out
}

// differingKeys names the type and knobs on which a and b disagree.
func differingKeys(a, b ftypes.SettingsDTO) []string {
	var out []string
	if !strings.EqualFold(a.Type, b.Type) {
		out = append(out, "type")
	}
	pa, pb := a.ParametersDTO, b.ParametersDTO
	for _, k := range knobs {
		x, y := *k.ptr(&pa), *k.ptr(&pb)
		switch {
		case x == nil && y == nil:
		case x == nil || y == nil || *x != *y:
			out = append(out, k.key)
		}
	}
	return out
}

func newCalcCmd() *cobra.Command {
	var (
		sf   *settingsFlags
		file string
	)
	cmd := &cobra.Command{
		Use:   "calc [SMILES...]",
		Short: "Calculate fingerprints for one or more molecules",
		Example: "  fpctl calc --type Morgan --num-bits 2048 --radius 2 CCO c1ccccc1\n" +
			"  fpctl calc --settings indexed.yaml --file library.smi -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := sf.dto(cmd)
			if err != nil {
				return err
			}
			smiles := append([]string(nil), args...)
			if file != "" {
				more, err := readSMILESFile(cmd, file)
				if err != nil {
					return err
				}
				smiles = append(smiles, more...)
			}
			if len(smiles) == 0 {
				return errors.InvalidParam("no SMILES given; pass them as arguments or with --file")
			}

			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			resp, err := cliCtx.Service.Calculate(ctx, &ftypes.CalculateRequest{Settings: dto, SMILES: smiles})
			if err != nil {
				return err
			}
			return PrintResult(cmd, calcView{resp: resp, verbose: cliCtx.Verbose})
		},
	}
	sf = addSettingsFlags(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "read SMILES from a file, one per line ('-' for stdin)")
	return cmd
}

func readSMILESFile(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		return readSMILES(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open SMILES file: %w", err)
	}
	defer f.Close()
	return readSMILES(f)
}

func newSimilarityCmd() *cobra.Command {
	var sf *settingsFlags
	cmd := &cobra.Command{
		Use:     "similarity QUERY TARGET",
		Short:   "Tanimoto similarity of two molecules under one descriptor",
		Example: "  fpctl similarity --type MACCS CCO CCN",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := sf.dto(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			resp, err := cliCtx.Service.Similarity(ctx, &ftypes.SimilarityRequest{Settings: dto, Query: args[0], Target: args[1]})
			if err != nil {
				return err
			}
			return PrintResult(cmd, similarityView{Query: args[0], Target: args[1], Tanimoto: resp.Tanimoto})
		},
	}
	sf = addSettingsFlags(cmd)
	return cmd
}

//Personal.AI order the ending
