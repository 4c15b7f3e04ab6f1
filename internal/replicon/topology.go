package replicon

import "strings"

// Topology values for submission chromosome lists.
const (
	TopologyLinear   = "linear"
	TopologyCircular = "circular"
)

// Chromosome types for submission chromosome lists.
const (
	TypeChromosome = "Chromosome"
	TypePlasmid    = "Plasmid"
)

// InferTopology derives the molecule topology from a replicon name:
// cp* plasmids are circular, lp* plasmids and the chromosome are linear.
// Unrecognized names default to linear.
func InferTopology(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(n, "cp") {
		return TopologyCircular
	}
	return TopologyLinear
}

// InferType reports whether a replicon is the chromosome or a plasmid.
func InferType(name string) string {
	if strings.ToLower(strings.TrimSpace(name)) == "chromosome" {
		return TypeChromosome
	}
	return TypePlasmid
}

// FormatTopologyType renders the combined CHROMOSOME_TYPE field,
// e.g. "Linear-Chromosome", "Circular-Plasmid".
func FormatTopologyType(topology, chromType string) string {
	return strings.ToUpper(topology[:1]) + topology[1:] + "-" + chromType
}

// SanitizeName makes a replicon name safe for submission lists:
// '+' is an invalid character and 'chromosome' is a reserved word.
// Type classification still runs on the original name.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "+", "-")
	if strings.ToLower(name) == "chromosome" {
		return "main"
	}
	return name
}

// ClassifyType buckets a consensus replicon into broad categories used
// for gene-cluster annotation.
func ClassifyType(replicon string) string {
	switch {
	case replicon == "multi-replicon":
		return "multi-replicon"
	case replicon == "chromosome":
		return "chromosome"
	case strings.HasPrefix(replicon, "cp"):
		return "circular_plasmid"
	case strings.HasPrefix(replicon, "lp"):
		return "linear_plasmid"
	case replicon == "unknown" || replicon == "unmatched":
		return replicon
	default:
		return "other"
	}
}

// ParseContigName extracts the base contig name, stripping bracket
// metadata: "contig_1 [gcode=11] [topology=linear]" -> "contig_1".
func ParseContigName(contigID string) string {
	fields := strings.Fields(strings.TrimSpace(contigID))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
