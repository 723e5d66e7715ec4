package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/client"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/errors"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

type fieldListView []string

func (v fieldListView) TableHeaders() []string { return []string{"Field"} }

func (v fieldListView) TableRows() [][]string {
	rows := make([][]string, len(v))
	for i, f := range v {
		rows[i] = []string{f}
	}
	return rows
}

type fieldSettingsView ftypes.FieldSettingsResponse

func (v fieldSettingsView) TableHeaders() []string { return []string{"Field", "Parameter", "Value"} }

func (v fieldSettingsView) TableRows() [][]string {
	rows := settingsView(v.Settings).TableRows()
	for i, r := range rows {
		rows[i] = append([]string{v.Field}, r...)
	}
	return rows
}

func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Manage the fingerprint settings registered for index fields on a server",
	}
	cmd.AddCommand(
		newFieldsListCmd(),
		newFieldsGetCmd(),
		newFieldsSetCmd(),
		newFieldsDeleteCmd(),
		newFieldsCheckCmd(),
	)
	return cmd
}

// apiClient returns the configured client or explains why there is none.
func apiClient(cliCtx *CLIContext) (*client.Client, error) {
	if cliCtx.Client == nil {
		return nil, errors.New(errors.ErrCodeServiceUnavailable, "no fingerprint server configured; pass --server")
	}
	return cliCtx.Client, nil
}

func newFieldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fields with registered settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := apiClient(cliCtx)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			fields, err := c.Fields().List(ctx)
			if err != nil {
				return err
			}
			if fields == nil {
				fields = []string{}
			}
			return PrintResult(cmd, fieldListView(fields))
		},
	}
}

func newFieldsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get FIELD",
		Short: "Show the settings registered for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := apiClient(cliCtx)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			resp, err := c.Fields().Get(ctx, args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, fieldSettingsView(*resp))
		},
	}
}

func newFieldsSetCmd() *cobra.Command {
	var sf *settingsFlags
	cmd := &cobra.Command{
		Use:     "set FIELD",
		Short:   "Register the settings a field is indexed with",
		Example: "  fpctl fields set smiles_fp --type Morgan --num-bits 2048 --radius 2",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := apiClient(cliCtx)
			if err != nil {
				return err
			}
			dto, err := sf.dto(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			resp, err := c.Fields().Put(ctx, args[0], dto)
			if err != nil {
				return err
			}
			cliCtx.Logger.Info("field settings registered",
				logging.String(logging.FieldField, args[0]),
				logging.String(logging.FieldFamily, resp.Settings.Type))
			return PrintResult(cmd, fieldSettingsView(*resp))
		},
	}
	sf = addSettingsFlags(cmd)
	return cmd
}

func newFieldsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete FIELD",
		Short: "Remove the settings registered for a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := apiClient(cliCtx)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			if err := c.Fields().Delete(ctx, args[0]); err != nil {
				return err
			}
			PrintSuccess(cmd, "deleted settings for field "+args[0])
			return nil
		},
	}
}

func newFieldsCheckCmd() *cobra.Command {
	var sf *settingsFlags
	cmd := &cobra.Command{
		Use:   "check FIELD",
		Short: "Check that query settings match the settings a field was indexed with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := apiClient(cliCtx)
			if err != nil {
				return err
			}
			dto, err := sf.dto(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cliCtx)
			defer cancel()
			if err := c.Fields().CheckQuery(ctx, args[0], dto); err != nil {
				return err
			}
			PrintSuccess(cmd, "query settings are compatible with field "+args[0])
			return nil
		},
	}
	sf = addSettingsFlags(cmd)
	return cmd
}

//Personal.AI order the ending
