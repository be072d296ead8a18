package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/research-ledger/internal/app"
	"github.com/heartmarshall/research-ledger/internal/auth"
	"github.com/heartmarshall/research-ledger/internal/domain"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
)

// errChainBroken is returned after a verification that found a break.
var errChainBroken = errors.New("audit chain is broken")

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "auditctl",
		Short:         "Inspect and verify the research audit ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (default: $CONFIG_PATH, ./config.yaml or /etc/research-ledger/config.yaml)")

	root.AddCommand(
		newVerifyCmd(d),
		newLastHashCmd(d),
		newExportCmd(d),
		newVerifyExportCmd(),
		newTokenCmd(d),
		newVersionCmd(),
	)
	return root
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// =============================================================================
// verify
// =============================================================================

func newVerifyCmd(d deps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay the ledger and check every link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, closeFn, err := d.openLedger(cmd.Context(), configPath(cmd))
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := client.VerifyChain(cmd.Context())
			if err != nil {
				return err
			}
			return printVerification(cmd.OutOrStdout(), res, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// =============================================================================
// last-hash
// =============================================================================

func newLastHashCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "last-hash",
		Short: "Print the entry hash of the newest entry (GENESIS when empty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, closeFn, err := d.openLedger(cmd.Context(), configPath(cmd))
			if err != nil {
				return err
			}
			defer closeFn()

			hash, err := client.LastHash(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// =============================================================================
// export / verify-export
// =============================================================================

func newExportCmd(d deps) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger as zstd-compressed JSON Lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, closeFn, err := d.openLedger(cmd.Context(), configPath(cmd))
			if err != nil {
				return err
			}
			defer closeFn()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			n, err := client.Export(cmd.Context(), f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", n, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newVerifyExportCmd() *cobra.Command {
	var (
		in     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "verify-export",
		Short: "Verify an export file offline, without a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open %s: %w", in, err)
			}
			defer f.Close()

			res, err := ledger.VerifyExport(f)
			if err != nil {
				return err
			}
			return printVerification(cmd.OutOrStdout(), res, asJSON)
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "export file to verify")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// =============================================================================
// token
// =============================================================================

func newTokenCmd(d deps) *cobra.Command {
	var (
		user string
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("--user must be a UUID: %w", err)
			}
			r, err := auth.ParseRole(role)
			if err != nil {
				return err
			}

			issuer, err := d.newIssuer(configPath(cmd))
			if err != nil {
				return err
			}
			mint := issuer.GenerateAccessToken
			if ttl > 0 {
				mint = func(id uuid.UUID, r auth.Role) (string, error) {
					return issuer.GenerateAccessTokenTTL(id, r, ttl)
				}
			}
			token, err := mint(userID, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user ID (UUID)")
	cmd.Flags().StringVar(&role, "role", "", "editor, reviewer, auditor or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: auth.access_token_ttl)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(app.ReadBuildInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print build information as JSON")
	return cmd
}

// =============================================================================
// output
// =============================================================================

type verificationOutput struct {
	Valid            bool   `json:"valid"`
	EntriesValidated int    `json:"entriesValidated"`
	BrokenAt         string `json:"brokenAt,omitempty"`
	Reason           string `json:"reason,omitempty"`
	LastHash         string `json:"lastHash,omitempty"`
}

// printVerification writes res and returns errChainBroken when the chain
// did not verify.
func printVerification(w io.Writer, res domain.ChainVerification, asJSON bool) error {
	out := verificationOutput{
		Valid:            res.Valid,
		EntriesValidated: res.EntriesValidated,
		Reason:           string(res.Reason),
		LastHash:         res.LastHash,
	}
	if res.BrokenAt != nil {
		out.BrokenAt = res.BrokenAt.String()
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else if res.Valid {
		fmt.Fprintf(w, "chain OK: %d entries, last hash %s\n", out.EntriesValidated, out.LastHash)
	} else {
		fmt.Fprintf(w, "chain BROKEN at %s (%s) after %d valid entries\n", out.BrokenAt, out.Reason, out.EntriesValidated)
	}

	if !res.Valid {
		return errChainBroken
	}
	return nil
}
