// File: cmd/profiles.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/profiles"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the device profiles the policy can apply",
		Long: `Prints every profile in the embedded catalog with its attribute
overrides, in the order the catalog defines them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range profiles.IDs() {
				profile, ok := profiles.Lookup(id)
				if !ok {
					return fmt.Errorf("catalog lists unknown profile %q", id)
				}
				printProfile(profile)
			}
			return nil
		},
	}
}

func printProfile(profile schemas.Profile) {
	fmt.Printf("%s\n", headFmt(string(profile.ID)))
	for _, prop := range profile.Props {
		fmt.Printf("  %-22s %s\n", prop.Key, prop.Value.String())
	}
	if fp, ok := profile.Lookup(schemas.KeyFingerprint); ok {
		fmt.Printf("  %s\n", dimFmt(fmt.Sprintf("fingerprint names device %q, build %q",
			profiles.DeviceName(fp.String()), profiles.BuildID(fp.String()))))
	}
	fmt.Println()
}
