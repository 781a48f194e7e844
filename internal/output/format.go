// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"

	"todoweb/internal/deploy"
	"todoweb/internal/infra"
)

// FormatInstance formats the declared compute instance.
// Format: "instance  region=... ami=... type=... subnet=... key=...\n"
func FormatInstance(w io.Writer, inst infra.Instance) {
	fmt.Fprintf(w, "instance  region=%s ami=%s type=%s subnet=%s key=%s\n",
		inst.Region, inst.AMI, inst.Type, inst.Subnet, inst.KeyName)
}

// FormatBucket formats the declared storage bucket.
func FormatBucket(w io.Writer, b infra.Bucket) {
	fmt.Fprintf(w, "bucket    name=%s\n", b.Name)
}

// FormatPlan formats a dry-run reconciliation plan, one step per line.
func FormatPlan(w io.Writer, steps []string) {
	for _, step := range steps {
		fmt.Fprintf(w, "plan: %s\n", step)
	}
}

// FormatReport formats the actions a reconciliation took.
func FormatReport(w io.Writer, rep deploy.Report, appName string) {
	if rep.InstalledSupervisor {
		fmt.Fprintln(w, "installed supervisor")
	}
	fmt.Fprintf(w, "%s %s\n", rep.ProcessAction, appName)
}
