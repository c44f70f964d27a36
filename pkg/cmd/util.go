package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/c-elegans/go-equiv/pkg/rtl"
)

// GetFlag gets an expected boolean flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt gets an expected int flag, or panic if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array flag, or panic if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Parse a design netlist file, exiting with a suitable message on failure.
func readDesignFile(filename string) *rtl.Design {
	bytes, err := os.ReadFile(filename)
	if err == nil {
		var design *rtl.Design
		//
		design, err = rtl.ParseDesign(bytes)
		if err == nil {
			return design
		}
	}
	// Handle error
	fmt.Println(err)
	os.Exit(2)
	// unreachable
	return nil
}

// Write a design netlist back out, exiting with a suitable message on
// failure.
func writeDesignFile(filename string, design *rtl.Design) {
	bytes, err := rtl.MarshalDesign(design)
	if err == nil {
		err = os.WriteFile(filename, bytes, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// selectedModules resolves the --module filters against a design, exiting
// if a named module does not exist.  With no filters, all modules are
// selected (in sorted name order).
func selectedModules(design *rtl.Design, names []string) []*rtl.Module {
	if len(names) == 0 {
		names = design.ModuleNames()
	}
	//
	modules := make([]*rtl.Module, len(names))
	//
	for i, name := range names {
		mod, ok := design.Modules[name]
		if !ok {
			fmt.Printf("unknown module %q\n", name)
			os.Exit(2)
		}

		modules[i] = mod
	}
	//
	return modules
}
