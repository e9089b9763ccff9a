// Package hypernode provides the client for the Hypernode compute network
// API. It covers model deployments, inference against deployed endpoints,
// compute jobs, node discovery and network statistics.
//
// A Client is safe for concurrent use. Construct one with New and functional
// options:
//
//	client, err := hypernode.New(
//		hypernode.WithAPIKey(os.Getenv("HYPERNODE_API_KEY")),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	dep, err := client.Deploy(ctx, hypernode.DeploymentConfig{
//		Model:    "meta-llama/Llama-3-8b",
//		Template: hypernode.TemplateHuggingFace,
//	})
//
// Every request is retried with exponential backoff according to the
// client's retry.Policy. Validation and authentication failures are
// treated as fatal and returned immediately; transient failures such as
// timeouts, rate limits and 5xx responses are retried until the attempt
// budget is exhausted, at which point the last error is returned as is.
package hypernode
