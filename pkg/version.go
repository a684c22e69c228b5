package pkg

import "fmt"

var (
	// These variables are here only to show current version. They are set in makefile during build process
	WalseqVersion         = "devel"
	GitRevision           = "devel"
	WalseqVersionRevision = fmt.Sprintf("%s-%s", WalseqVersion, GitRevision)
)
