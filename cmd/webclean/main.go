// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/webclean/cmd/webclean/opts"
	"github.com/walteh/webclean/pkg/operation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string) int {
	o := opts.New()
	cmd := newRootCmd(o)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if o.Console != nil {
			o.Console.Error(err.Error())
		} else {
			cmd.PrintErrln("Error:", err)
		}
		if errors.Is(err, operation.ErrMissingDirectory) {
			return 2
		}
		return 1
	}
	return 0
}
