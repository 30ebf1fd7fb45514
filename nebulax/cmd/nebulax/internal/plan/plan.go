package plan

import (
	"fmt"
	"strings"

	"github.com/NebulaX/nebulax/nebulax/cmd/nebulax/internal/common"
	"github.com/NebulaX/nebulax/nebulax/internal/deploy"
	"github.com/spf13/cobra"
)

type stepView struct {
	Future       string   `json:"future"`
	Contract     string   `json:"contract"`
	Args         []string `json:"args"`
	Dependencies []string `json:"dependencies"`
	Batch        int      `json:"batch"`
}

type planView struct {
	Module  string            `json:"module"`
	Steps   []stepView        `json:"steps"`
	Results map[string]string `json:"results"`
}

func describe(unit *deploy.Unit) planView {
	batch := make(map[string]int)
	for i, level := range unit.Levels() {
		for _, f := range level {
			batch[f.Id()] = i
		}
	}

	v := planView{
		Module:  unit.Name(),
		Results: make(map[string]string),
	}
	for _, f := range unit.TopologicalOrder() {
		step, _ := unit.Step(f.Id())
		sv := stepView{
			Future:       f.Id(),
			Contract:     f.Contract,
			Args:         []string{},
			Dependencies: []string{},
			Batch:        batch[f.Id()],
		}
		for _, arg := range step.Args() {
			if dep, ok := arg.(deploy.Future); ok {
				sv.Args = append(sv.Args, "address("+dep.Id()+")")
			} else {
				sv.Args = append(sv.Args, fmt.Sprintf("%v", arg))
			}
		}
		for _, dep := range step.Dependencies() {
			sv.Dependencies = append(sv.Dependencies, dep.Id())
		}
		v.Steps = append(v.Steps, sv)
	}
	for name, f := range unit.Results() {
		v.Results[name] = f.Id()
	}
	return v
}

func GetCommand() *cobra.Command {
	var (
		module string
		asJson bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the deployment steps in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deploy.ValidateModuleName(module); err != nil {
				return err
			}

			v := describe(deploy.BuildNebulaX(module))
			if asJson {
				return common.WriteJSON(cmd.OutOrStdout(), v)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Module %s\n", v.Module)
			for _, s := range v.Steps {
				fmt.Fprintf(out, "  [batch %d] %s(%s)\n", s.Batch, s.Future, strings.Join(s.Args, ", "))
				for _, dep := range s.Dependencies {
					fmt.Fprintf(out, "      after %s\n", dep)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&module, "module", "m", deploy.DefaultModuleName, "deployment module name")
	cmd.Flags().BoolVar(&asJson, "json", false, "print as json")
	return cmd
}
