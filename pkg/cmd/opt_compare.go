package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c-elegans/go-equiv/pkg/opt"
)

// optCompareCmd represents the opt_compare command
var optCompareCmd = &cobra.Command{
	Use:   "opt_compare [flags] design_file",
	Short: "Fold comparison cells against constant zero.",
	Long: `Fold $lt and $ge cells whose second operand is a constant zero
into their known value or the sign bit of the first operand.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		design := readDesignFile(args[0])
		total := 0
		//
		for _, mod := range selectedModules(design, GetStringArray(cmd, "module")) {
			total += opt.OptimizeCompares(mod)
		}
		//
		fmt.Printf("Rewrote %d comparison cells.\n", total)
		//
		if out := GetString(cmd, "output"); out != "" {
			writeDesignFile(out, design)
		}
	},
}

func init() {
	rootCmd.AddCommand(optCompareCmd)
	optCompareCmd.Flags().StringArray("module", nil, "restrict the pass to the named module (repeatable)")
	optCompareCmd.Flags().StringP("output", "o", "", "write the rewritten design to the given file")
}
