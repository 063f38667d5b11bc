package snmp

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAgent answers GET requests for the objects in values and returns its UDP port.
func fakeAgent(t *testing.T, community string, values map[string]string) int {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		decoder := &gosnmp.GoSNMP{}
		buf := make([]byte, 4096)
		for {
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}
			req, err := decoder.SnmpDecodePacket(buf[:n])
			if err != nil || req.Community != community {
				continue
			}
			resp := &gosnmp.SnmpPacket{
				Version:   gosnmp.Version2c,
				Community: community,
				PDUType:   gosnmp.GetResponse,
				RequestID: req.RequestID,
			}
			for _, v := range req.Variables {
				pdu := gosnmp.SnmpPDU{Name: v.Name, Type: gosnmp.NoSuchObject}
				if value, ok := values[v.Name]; ok {
					pdu = gosnmp.SnmpPDU{Name: v.Name, Type: gosnmp.OctetString, Value: []byte(value)}
				}
				resp.Variables = append(resp.Variables, pdu)
			}
			out, err := resp.MarshalMsg()
			if err != nil {
				continue
			}
			conn.WriteTo(out, addr)
		}
	}()
	return conn.LocalAddr().(*net.UDPAddr).Port
}

func TestProberSysName(t *testing.T) {
	port := fakeAgent(t, "monitor", map[string]string{
		OIDSysName:  "SW3.lab.local",
		OIDSysDescr: "Cisco IOS Software, C2960 Software",
	})
	p := NewProber("monitor", port, 2*time.Second, 0)

	name, err := p.SysName(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "SW3.lab.local", name)

	descr, err := p.SysDescr(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.Contains(t, descr, "Cisco IOS")
}

func TestProberNoSuchObject(t *testing.T) {
	port := fakeAgent(t, "public", map[string]string{})
	p := NewProber("public", port, 2*time.Second, 0)

	_, err := p.SysName(context.Background(), "127.0.0.1")
	assert.ErrorIs(t, err, ErrNoSuchObject)
}

func TestProberWrongCommunityTimesOut(t *testing.T) {
	port := fakeAgent(t, "secret", map[string]string{OIDSysName: "SW1"})
	p := NewProber("public", port, 200*time.Millisecond, 0)

	_, err := p.SysName(context.Background(), "127.0.0.1")
	assert.Error(t, err)
}

func TestNewProber(t *testing.T) {
	p := NewProber("public", 1161, time.Second, 2)
	assert.Equal(t, "public", p.Community)
	assert.Equal(t, uint16(1161), p.Port)
	assert.Equal(t, time.Second, p.Timeout)
	assert.Equal(t, 2, p.Retries)
}
