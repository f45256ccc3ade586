// Package invocation translates the build command's flags into a Plan: the
// arguments handed to the container runtime (mounts, published ports,
// environment) and the arguments handed to the inner build tool, with every
// host path rewritten to where it appears inside the container.
//
// Translation is table driven. Each recognized flag maps to a handler that
// declares how many value tokens it consumes and produces the mounts and the
// rewritten value. Flags not in the table are forwarded verbatim and never
// consume a following token.
//
// Container layout:
//
//	/doc           repository root enclosing --doc (read-only)
//	/reference     --reference (read-only)
//	/resource_<n>  n-th --resource, counting from 0 (read-only)
//	/out           parent of --out, or the working directory (delegated)
package invocation
