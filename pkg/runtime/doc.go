// Package runtime runs code snippets for the interactive blocks of the guide.
//
// A [Runtime] executes one snippet and captures what it printed. Acquiring a
// runtime can be slow (locating and probing an interpreter), so acquisition
// goes through a [Loader] which memoizes the result:
//
//   - concurrent callers that arrive while an acquisition is in flight share
//     that one acquisition and receive the identical handle
//   - once resolved, the handle is returned without acquiring again
//   - a failed acquisition caches nothing, so the next call retries
//
// A caller that gives up (its context is cancelled) stops waiting, but the
// shared acquisition runs to completion for everyone else. There is no
// timeout or cancellation for the acquisition itself.
//
// The process-wide loader is reached through [Default]; tests replace it with
// [SetDefault] and restore it with [ResetDefault].
//
//	res, err := runtime.Default().Exec(ctx, `print("hello")`)
//	if err != nil {
//	    return err // runtime could not be acquired
//	}
//	fmt.Println(res.Output())
package runtime
