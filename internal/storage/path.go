package storage

import "path/filepath"

// shardWidth is the number of hash characters per shard directory level.
// Two levels of two characters each keeps directories small even with
// millions of images (e.g. /data/ab/cd/abcdef...).
const (
	shardLevels = 2
	shardWidth  = 2
)

// computePath generates the on-disk path for a content hash.
// Hashes too short to shard are placed directly under the base path.
func computePath(basePath, key string) string {
	if len(key) < shardLevels*shardWidth {
		return filepath.Join(basePath, key)
	}

	components := make([]string, 0, shardLevels+2)
	components = append(components, basePath)

	offset := 0
	for i := 0; i < shardLevels; i++ {
		components = append(components, key[offset:offset+shardWidth])
		offset += shardWidth
	}
	components = append(components, key)

	return filepath.Join(components...)
}

// shardDir returns the directory portion of the sharded path for a hash.
func shardDir(basePath, key string) string {
	return filepath.Dir(computePath(basePath, key))
}
