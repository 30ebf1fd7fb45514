package solc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NebulaX/nebulax/nebulax/internal/config"
	"github.com/ethereum/go-ethereum/common/compiler"
	solcconfig "github.com/fabelx/go-solc-select/pkg/config"
	"github.com/fabelx/go-solc-select/pkg/installer"
	"github.com/fabelx/go-solc-select/pkg/versions"
)

type compileOptions struct {
	allowedPaths  []string
	basePath      string
	remappings    []string
	optimizeParam int
}

func (opts *compileOptions) toArgs(sourceFilePath string) []string {
	args := []string{
		"--combined-json", "abi,bin,bin-runtime",
	}

	if len(opts.basePath) > 0 {
		args = append(args, "--base-path", opts.basePath)
	}
	args = append(args, opts.remappings...)
	if len(opts.allowedPaths) > 0 {
		args = append(args, "--allow-paths")
		args = append(args, strings.Join(opts.allowedPaths, ","))
	}
	if opts.optimizeParam > 0 {
		args = append(args,
			"--optimize",
			"--optimize-runs",
			strconv.Itoa(opts.optimizeParam))
	}

	args = append(args, sourceFilePath)
	return args
}

type Option func(*compileOptions)

func WithAllowedPaths(paths ...string) Option {
	return func(o *compileOptions) {
		for _, path := range paths {
			o.allowedPaths = append(o.allowedPaths, absPath(path))
		}
	}
}

func WithBasePath(basePath string) Option {
	return func(o *compileOptions) {
		o.basePath = absPath(basePath)
	}
}

// WithRemapping allows imports like "@openzeppelin/..." to resolve to a local directory.
func WithRemapping(from, to string) Option {
	return func(o *compileOptions) {
		o.remappings = append(o.remappings, fmt.Sprintf("%s=%s", from, absPath(to)))
	}
}

// WithOptimizeRuns enables the optimizer. Zero leaves it disabled.
func WithOptimizeRuns(runs int) Option {
	return func(o *compileOptions) {
		o.optimizeParam = runs
	}
}

// OptionsFromDescriptor translates the compiler settings into command line options.
func OptionsFromDescriptor(c config.Compiler) []Option {
	var opts []Option
	if c.Optimizer.Enabled {
		opts = append(opts, WithOptimizeRuns(c.Optimizer.Runs))
	}
	return opts
}

// Args returns the solc command line for compiling source.
func Args(source string, options ...Option) []string {
	var opts compileOptions
	for _, o := range options {
		o(&opts)
	}
	return opts.toArgs(source)
}

// FindCompiler returns the path to the solc binary of exactly the given version,
// installing it first if needed.
func FindCompiler(version string) (string, error) {
	if _, ok := versions.GetInstalled()[version]; !ok {
		if err := installer.InstallSolc(version); err != nil {
			return "", fmt.Errorf("failed to install compiler %s: %w", version, err)
		}
	}
	solc, ok := versions.GetInstalled()[version]
	if !ok {
		return "", fmt.Errorf("failed to find compiler %s", version)
	}
	solc = "solc-" + solc

	fileName := filepath.Join(solcconfig.SolcArtifacts, solc, solc)
	if _, err := os.Stat(fileName); err != nil {
		return "", fmt.Errorf("failed to find compiler %s: %w", version, err)
	}
	return fileName, nil
}

// ParseCombinedJSON parses solc --combined-json output and keys contracts by bare name.
func ParseCombinedJSON(output []byte, c config.Compiler) (map[string]*compiler.Contract, error) {
	opts := ""
	if c.Optimizer.Enabled {
		opts = "--optimize --optimize-runs " + strconv.Itoa(c.Optimizer.Runs)
	}
	contracts, err := compiler.ParseCombinedJSON(output, "" /* source */, c.Version, c.Version, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse solc output: %w", err)
	}

	res := make(map[string]*compiler.Contract, len(contracts))
	for name, contract := range contracts {
		res[name[strings.LastIndex(name, ":")+1:]] = contract
	}
	return res, nil
}

// Compile runs the compiler at solcPath on source with the descriptor's settings.
func Compile(
	ctx context.Context,
	solcPath string,
	source string,
	c config.Compiler,
	options ...Option,
) (map[string]*compiler.Contract, error) {
	args := Args(source, append(OptionsFromDescriptor(c), options...)...)
	cmd := exec.CommandContext(ctx, solcPath, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute `%s`: %w.\n%s", cmd, err, stderrBuf.String())
	}
	return ParseCombinedJSON(output, c)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
