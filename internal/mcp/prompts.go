package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("build_landing_page",
		mcp.WithPromptDescription("Guide through building a landing page post from the component library"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What the landing page is about"),
			mcp.RequiredArgument(),
		),
	), s.handleLandingPagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("product_feature_list",
		mcp.WithPromptDescription("Describe a product with a header and a description with one bullet per feature"),
		mcp.WithArgument("product",
			mcp.ArgumentDescription("Name of the product"),
			mcp.RequiredArgument(),
		),
	), s.handleFeatureListPrompt)
}

func (s *Server) handleLandingPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build a landing page for: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a landing page about "%s". Follow these steps:

1. Call create_post with a title for the page
2. Call list_component_types to see what can be placed and which values each property accepts
3. add_component a HeaderElement with a headline and subtitle about the topic
4. add_component an ImageElement and set its src to an https image URL if you have one
5. add_component a TextElement with two or three sentences of body copy
6. Finish with a ButtonElement whose linkUrl points at the call to action

Use move_component to fix the order and get_builder_state to check the result.`, topic),
				},
			},
		},
	}, nil
}

func (s *Server) handleFeatureListPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	product := req.Params.Arguments["product"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Feature list for %s", product),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Describe "%s" on the active post:

1. add_component a HeaderElement titled "%s"
2. add_component a DescriptionBulletElement: put a one-sentence summary in description and one feature per line in bulletPointsText
3. If an AiTextGeneratorElement would help, set its userProvidedPrompt and call generate_text

Keep every bullet under 25 words.`, product, product),
				},
			},
		},
	}, nil
}
