package service

import (
	"github.com/louisbranch/troller/internal/services/mcp/domain"
	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

// register adds every tool and resource the bridge exposes to s.
func (s *Server) register(conn grpc.ClientConnInterface) {
	dice := rollerv1.NewDiceServiceClient(conn)
	clocks := rollerv1.NewClockServiceClient(conn)
	get, set := s.session.get, s.session.set

	mcp.AddTool(s.mcpServer, domain.RollTool(), domain.RollHandler(dice))

	mcp.AddTool(s.mcpServer, domain.ClockAddTool(), domain.ClockAddHandler(clocks, get, s.notify))
	mcp.AddTool(s.mcpServer, domain.ClockBumpTool(), domain.ClockBumpHandler(clocks, get, s.notify))
	mcp.AddTool(s.mcpServer, domain.ClockRemoveTool(), domain.ClockRemoveHandler(clocks, get, s.notify))
	mcp.AddTool(s.mcpServer, domain.ClockShowTool(), domain.ClockShowHandler(clocks, get))
	mcp.AddTool(s.mcpServer, domain.ClockListTool(), domain.ClockListHandler(clocks, get))
	s.mcpServer.AddResourceTemplate(domain.ClockResourceTemplate(), domain.ClockResourceHandler(clocks))

	mcp.AddTool(s.mcpServer, domain.SetContextTool(), domain.SetContextHandler(set, get))
	s.mcpServer.AddResource(domain.ContextResource(), domain.ContextResourceHandler(get))
}
