package tools

import (
	"bytes"
	"context"
	"fmt"
	"time"

	nanogo "simonwaldherr.de/go/nanogo/interp"
)

// RunScript executes stored tool source inside the nanoGo interpreter
// with a timeout. The payload is exposed through Arg/Args natives and
// output is captured from ConsoleLog; panics in user code are recovered
// so they cannot take the host down.
func RunScript(ctx context.Context, source string, payload map[string]interface{}, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outBuf := &bytes.Buffer{}
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("script panicked: %v", r)
			}
		}()
		done <- runInterpreted(source, payload, outBuf)
	}()

	select {
	case err := <-done:
		return outBuf.String(), err
	case <-ctx.Done():
		return outBuf.String(), fmt.Errorf("script execution timed out after %s", timeout)
	}
}

func runInterpreted(source string, payload map[string]interface{}, out *bytes.Buffer) error {
	vm := nanogo.NewInterpreter()
	registerNatives(vm, payload, out)
	nanogo.RegisterBuiltinPackages(vm)
	return vm.Run(source)
}

// registerNatives installs the minimal host surface exposed to tool
// scripts: console output and read-only payload access.
func registerNatives(vm *nanogo.Interpreter, payload map[string]interface{}, out *bytes.Buffer) {
	vm.RegisterNative("ConsoleLog", func(args []any) (any, error) {
		if len(args) > 0 {
			fmt.Fprintln(out, nanogo.ToString(args[0]))
		}
		return nil, nil
	})

	vm.RegisterNative("ConsoleError", func(args []any) (any, error) {
		if len(args) > 0 {
			fmt.Fprintln(out, "[error] "+nanogo.ToString(args[0]))
		}
		return nil, nil
	})

	vm.RegisterNative("Arg", func(args []any) (any, error) {
		if len(args) == 0 || payload == nil {
			return "", nil
		}
		key := nanogo.ToString(args[0])
		if v, ok := payload[key]; ok {
			return v, nil
		}
		return "", nil
	})

	vm.RegisterNative("Args", func(args []any) (any, error) {
		if payload == nil {
			return map[string]interface{}{}, nil
		}
		return payload, nil
	})
}
