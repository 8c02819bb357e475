package partition

import (
	"path/filepath"
	"strings"

	"github.com/example/dpgen/internal/core/compat"
)

// OutputDirName is the directory, next to the config file, that receives generated files.
const OutputDirName = "output"

// DefaultDocumentPath returns output/output_<config-stem>_v<M_m_p>.json beside the config.
func DefaultDocumentPath(configPath string, version compat.Version) string {
	stem := strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath))
	name := "output_" + stem + "_v" + version.FileTag() + ".json"
	return filepath.Join(filepath.Dir(configPath), OutputDirName, name)
}

// ImagePaths returns the factory and upgrade image paths for an item document. The
// images sit next to the document and drop its "output_" and "_config" markers.
func ImagePaths(documentPath string) (factory, upgrade string) {
	base := filepath.Base(documentPath)
	base = strings.ReplaceAll(base, "output_", "")
	base = strings.ReplaceAll(base, "_config", "")
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".bin"

	dir := filepath.Dir(documentPath)
	return filepath.Join(dir, "data_partition_factory_"+base), filepath.Join(dir, "data_partition_upgrade_"+base)
}
