// Package scene implements the tree builder: it turns a root id and an
// id-keyed record map into typed entity stores (the Builder) and a tree of
// (kind, index) handles. This is the second pipeline stage; layout and
// rendering consume its output read-only.
package scene
