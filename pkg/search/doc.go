// Package search is the client facade over the dispatcher.
//
// A Client is bound to one application. It owns the host pools, the health
// tracker shared by all its indices and the task polling policy.
//
//	cfg, err := search.LoadConfig()
//	if err != nil {
//		return err
//	}
//	client, err := search.NewClient(cfg, search.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	idx := client.InitIndex("products")
//	res, err := idx.Search(ctx, query.New("phone"))
//
// Writes return a Task acknowledging the change. WaitTask blocks until the
// engine has applied it:
//
//	task, err := idx.SaveObject(ctx, "42", product)
//	if err != nil {
//		return err
//	}
//	err = idx.WaitTask(ctx, task.TaskID)
//
// Per-call headers, forwarded end-user IP and extra query parameters travel
// in the context:
//
//	ctx = search.WithRequestOptions(ctx, dispatch.RequestOptions{ForwardedFor: ip})
//
// Errors come from the dispatcher: use dispatch.IsClientError and
// dispatch.IsNotFound, or errors.Is with dispatch.ErrHostsUnreachable.
package search
