/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"github.com/gmsuite/gmsuite/common/metrics"
)

var versionGaugeOpts = metrics.GaugeOpts{
	Name:         "gmsuite_version",
	Help:         "The active version of gmsuite.",
	LabelNames:   []string{"version"},
	StatsdFormat: "%{#fqname}.%{version}",
}
