// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Command domaincheck validates custom domain names and runs DNS TXT
// ownership challenges from the command line.
//
// Usage:
//
//	domaincheck validate example.com bad_name.com
//	domaincheck validate --input domains.xlsx --format xlsx --output report.xlsx
//	domaincheck punycode 例子.测试
//	domaincheck challenge generate example.com --prefix myservice
//	domaincheck challenge verify example.com myservice=Wq3...
//	domaincheck servers --server 1.1.1.1 --server 8.8.8.8
//
// Exit status is 0 on success, 1 when a domain is invalid or ownership is
// not verified, and 2 when the check itself could not be performed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
