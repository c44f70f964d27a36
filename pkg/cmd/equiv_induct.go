package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c-elegans/go-equiv/pkg/induct"
	"github.com/c-elegans/go-equiv/pkg/rtl"
)

// equivInductCmd represents the equiv_induct command
var equivInductCmd = &cobra.Command{
	Use:   "equiv_induct [flags] design_file",
	Short: "Prove $equiv cells using temporal induction.",
	Long: `Prove $equiv cells using a version of temporal induction.

Only selected $equiv cells are proven and only cells of selected modules
are used to perform the proof.

This command uses a weak definition of 'equivalence': it proves that the
two circuits will not diverge after they produce equal outputs (observable
via $equiv) for at least <seq> cycles.  Combined with simulation this is
very powerful, because simulation can give confidence that the circuits
start out synced for at least <seq> cycles after reset.`,
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
		maxSteps := GetInt(cmd, "seq")
		design := readDesignFile(args[0])
		total := 0
		//
		for _, mod := range selectedModules(design, GetStringArray(cmd, "module")) {
			total += proveModule(mod, maxSteps)
		}
		//
		fmt.Printf("Proved %d previously unproven $equiv cells.\n", total)
		//
		if out := GetString(cmd, "output"); out != "" {
			writeDesignFile(out, design)
		}
	},
}

// Prove the $equiv cells of one module, returning how many were newly
// proven.
func proveModule(mod *rtl.Module, maxSteps int) int {
	sigmap := rtl.NewSigMap(mod)
	// Filter out claims whose operands are already canonically identical;
	// those are trivially proven and not worth SAT effort.
	var workset []*rtl.Cell
	//
	for _, cell := range mod.Cells() {
		if cell.Type != "$equiv" {
			continue
		}
		//
		a := sigmap.ApplySpec(cell.Port("A"))
		b := sigmap.ApplySpec(cell.Port("B"))
		//
		if !a.Equals(b) {
			workset = append(workset, cell)
		}
	}
	//
	if len(workset) == 0 {
		log.Infof("no selected unproven $equiv cells found in %s", mod.Name)
		return 0
	}
	//
	return induct.New(mod, sigmap, workset, maxSteps).Run()
}

func init() {
	rootCmd.AddCommand(equivInductCmd)
	equivInductCmd.Flags().Int("seq", induct.DefaultMaxSteps, "max. number of time steps to be considered")
	equivInductCmd.Flags().StringArray("module", nil, "restrict the pass to the named module (repeatable)")
	equivInductCmd.Flags().StringP("output", "o", "", "write the rewritten design to the given file")
}
