// Package history records one entry per release run in a YAML file under
// the state directory, so operators can see what past runs published or
// why they skipped.
package history
