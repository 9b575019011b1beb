// Package main provides the shogun CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/born-ml/shogun/backend/webgpu"
	"github.com/born-ml/shogun/core"
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/object"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "shogun:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(out, "shogun %s\n", core.Version)
		return nil
	case "classes":
		return classes(out)
	case "params":
		if len(args) != 2 {
			return errors.New("usage: shogun params <class>")
		}
		return params(out, args[1])
	case "info":
		return info(out)
	default:
		usage(out)
		return errors.Newf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintf(out, "shogun %s\n\n", core.Version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version          Show version")
	fmt.Fprintln(out, "  classes          List registered classes")
	fmt.Fprintln(out, "  params <class>   Describe the parameters of a class")
	fmt.Fprintln(out, "  info             Show the configuration read from SHOGUN_* variables")
}

func classes(out io.Writer) error {
	for _, name := range object.DefaultRegistry().Available() {
		fmt.Fprintln(out, name)
	}
	return nil
}

func params(out io.Writer, class string) error {
	o, err := object.DefaultRegistry().New(class)
	if err != nil {
		return err
	}
	defer o.Unref()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tKIND\tPROPERTIES\tVALUE\tDESCRIPTION")
	for _, p := range o.Params() {
		value := fmt.Sprint(p.Value)
		if opts, err := object.Options(o, p.Name); err == nil {
			name, _ := object.OptionName(o, p.Name)
			value = fmt.Sprintf("%s %v", name, opts)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Type, kindName(p.Kind), p.Properties, value, p.Description)
	}
	return w.Flush()
}

func kindName(k object.Kind) string {
	switch k {
	case object.KindContainer:
		return "container"
	case object.KindObject:
		return "object"
	case object.KindComputed:
		return "computed"
	case object.KindOption:
		return "option"
	default:
		return "value"
	}
}

func info(out io.Writer) error {
	cfg, err := core.FromEnv()
	if err != nil {
		return err
	}
	lib, err := core.InitWriter(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer lib.Close()

	env := lib.Env()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "version\t%s\n", core.Version)
	fmt.Fprintf(w, "cpu backend\t%s\n", env.CPUBackend().Name())
	if gpu := env.GPUBackend(); gpu != nil {
		fmt.Fprintf(w, "gpu backend\t%s\n", gpu.Name())
	} else {
		fmt.Fprintf(w, "gpu backend\tnone (webgpu available: %t)\n", webgpu.IsAvailable())
	}
	fmt.Fprintf(w, "threads\t%d\n", env.NumThreads())
	fmt.Fprintf(w, "log level\t%s\n", cfg.LogLevel)
	if cfg.MaxAllocBytes > 0 {
		fmt.Fprintf(w, "max alloc bytes\t%d\n", cfg.MaxAllocBytes)
	} else {
		fmt.Fprintln(w, "max alloc bytes\tunlimited")
	}
	fmt.Fprintf(w, "classes\t%d\n", len(lib.Registry().Available()))
	return w.Flush()
}
